package referralservice

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/ledger"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/GlebRadaev/elevatex/pkg/validate"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// memState is an in-memory stand-in for the relational store. Transactions
// are serialized and rolled back from a snapshot on error, which is at least
// as strict as the row and advisory locks the repositories take.
type memState struct {
	mu sync.Mutex

	users  map[int]domain.User
	chains map[int]domain.Chain
	edges  map[int]domain.Referral
	txs    map[int]domain.Transaction

	nextUser, nextChain, nextEdge, nextTx int

	failReference string
}

type memSnapshot struct {
	users  map[int]domain.User
	chains map[int]domain.Chain
	edges  map[int]domain.Referral
	txs    map[int]domain.Transaction

	nextUser, nextChain, nextEdge, nextTx int
}

type inTxKey struct{}

func newMemState() *memState {
	return &memState{
		users:  map[int]domain.User{},
		chains: map[int]domain.Chain{},
		edges:  map[int]domain.Referral{},
		txs:    map[int]domain.Transaction{},
	}
}

func (s *memState) snapshot() memSnapshot {
	snap := memSnapshot{
		users:     make(map[int]domain.User, len(s.users)),
		chains:    make(map[int]domain.Chain, len(s.chains)),
		edges:     make(map[int]domain.Referral, len(s.edges)),
		txs:       make(map[int]domain.Transaction, len(s.txs)),
		nextUser:  s.nextUser,
		nextChain: s.nextChain,
		nextEdge:  s.nextEdge,
		nextTx:    s.nextTx,
	}
	for k, v := range s.users {
		v.Badges = append([]string(nil), v.Badges...)
		snap.users[k] = v
	}
	for k, v := range s.chains {
		snap.chains[k] = v
	}
	for k, v := range s.edges {
		snap.edges[k] = v
	}
	for k, v := range s.txs {
		snap.txs[k] = v
	}
	return snap
}

func (s *memState) restore(snap memSnapshot) {
	s.users, s.chains, s.edges, s.txs = snap.users, snap.chains, snap.edges, snap.txs
	s.nextUser, s.nextChain, s.nextEdge, s.nextTx = snap.nextUser, snap.nextChain, snap.nextEdge, snap.nextTx
}

// do runs fn under the state lock unless ctx already carries a transaction.
func (s *memState) do(ctx context.Context, fn func()) {
	if ctx.Value(inTxKey{}) == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

func (s *memState) Begin(ctx context.Context, fn pg.TransactionalFn) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memState) addUser(name string, activated bool) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := validate.NewReferralCode()
	if err != nil {
		panic(err)
	}
	s.nextUser++
	u := domain.User{
		ID:           s.nextUser,
		Name:         name,
		ReferralCode: code,
		IsActivated:  activated,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	return u
}

func (s *memState) user(id int) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memState) allEdges() []domain.Referral {
	s.mu.Lock()
	defer s.mu.Unlock()
	edges := make([]domain.Referral, 0, len(s.edges))
	for _, e := range s.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	return edges
}

func (s *memState) allTransactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := make([]domain.Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return txs
}

var errInjected = errors.New("injected failure")

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

type memUsers struct{ s *memState }

func (r memUsers) FindByID(ctx context.Context, id int) (*domain.User, error) {
	var out *domain.User
	r.s.do(ctx, func() {
		if u, ok := r.s.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r memUsers) LockByID(ctx context.Context, id int) (*domain.User, error) {
	return r.FindByID(ctx, id)
}

func (r memUsers) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	var out *domain.User
	r.s.do(ctx, func() {
		for _, u := range r.s.users {
			if u.ReferralCode == code {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r memUsers) UpdateBalances(ctx context.Context, userID int, b ledger.Balances) error {
	r.s.do(ctx, func() {
		u := r.s.users[userID]
		u.AvailableBalance, u.PendingWithdrawals, u.TotalEarned = b.Available, b.Pending, b.TotalEarned
		r.s.users[userID] = u
	})
	return nil
}

func (r memUsers) AddBadge(ctx context.Context, userID int, badge string) (bool, error) {
	added := false
	r.s.do(ctx, func() {
		u := r.s.users[userID]
		if u.HasBadge(badge) {
			return
		}
		u.Badges = append(append([]string(nil), u.Badges...), badge)
		r.s.users[userID] = u
		added = true
	})
	return added, nil
}

type memChains struct{ s *memState }

func (r memChains) LockPlacement(ctx context.Context, userID int) error { return nil }
func (r memChains) Lock(ctx context.Context, chainID int) error         { return nil }
func (r memChains) LockCounter(ctx context.Context) error               { return nil }

func (r memChains) FindByID(ctx context.Context, id int) (*domain.Chain, error) {
	var out *domain.Chain
	r.s.do(ctx, func() {
		if c, ok := r.s.chains[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r memChains) FindByOrigin(ctx context.Context, userID int) (*domain.Chain, error) {
	var out *domain.Chain
	r.s.do(ctx, func() {
		for _, c := range r.s.chains {
			if c.OriginUserID == userID {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r memChains) FindOpen(ctx context.Context, capacity, limit int) ([]domain.Chain, error) {
	var open []domain.Chain
	r.s.do(ctx, func() {
		for _, c := range r.s.chains {
			if c.CompletedAt == nil && c.MemberCount < capacity {
				open = append(open, c)
			}
		}
	})
	sort.Slice(open, func(i, j int) bool {
		if open[i].MemberCount != open[j].MemberCount {
			return open[i].MemberCount < open[j].MemberCount
		}
		return open[i].ID < open[j].ID
	})
	if len(open) > limit {
		open = open[:limit]
	}
	return open, nil
}

func (r memChains) Create(ctx context.Context, originUserID int) (*domain.Chain, error) {
	var (
		out *domain.Chain
		err error
	)
	r.s.do(ctx, func() {
		for _, c := range r.s.chains {
			if c.OriginUserID == originUserID {
				err = uniqueViolation()
				return
			}
		}
		r.s.nextChain++
		c := domain.Chain{ID: r.s.nextChain, OriginUserID: originUserID, MemberCount: 1, CreatedAt: time.Now()}
		r.s.chains[c.ID] = c
		out = &c
	})
	return out, err
}

func (r memChains) IncrementMembers(ctx context.Context, chainID int) (int, error) {
	var count int
	r.s.do(ctx, func() {
		c := r.s.chains[chainID]
		c.MemberCount++
		r.s.chains[chainID] = c
		count = c.MemberCount
	})
	return count, nil
}

func (r memChains) MarkComplete(ctx context.Context, chainID int, at time.Time) (bool, error) {
	marked := false
	r.s.do(ctx, func() {
		c := r.s.chains[chainID]
		if c.CompletedAt != nil {
			return
		}
		c.CompletedAt = &at
		r.s.chains[chainID] = c
		marked = true
	})
	return marked, nil
}

type memReferrals struct{ s *memState }

func (r memReferrals) Create(ctx context.Context, ref *domain.Referral) (*domain.Referral, error) {
	var (
		out *domain.Referral
		err error
	)
	r.s.do(ctx, func() {
		for _, e := range r.s.edges {
			if e.ChildID == ref.ChildID || (e.ChainID == ref.ChainID && e.PositionInChain == ref.PositionInChain) {
				err = uniqueViolation()
				return
			}
		}
		r.s.nextEdge++
		e := *ref
		e.ID = r.s.nextEdge
		e.IsActive = true
		e.EarningsPaid = decimal.Zero
		e.CreatedAt = time.Now()
		r.s.edges[e.ID] = e
		out = &e
	})
	return out, err
}

func (r memReferrals) FindByID(ctx context.Context, id int) (*domain.Referral, error) {
	var out *domain.Referral
	r.s.do(ctx, func() {
		if e, ok := r.s.edges[id]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r memReferrals) LockByID(ctx context.Context, id int) (*domain.Referral, error) {
	return r.FindByID(ctx, id)
}

func (r memReferrals) FindByChild(ctx context.Context, childID int) (*domain.Referral, error) {
	var out *domain.Referral
	r.s.do(ctx, func() {
		for _, e := range r.s.edges {
			if e.ChildID == childID {
				e := e
				out = &e
				return
			}
		}
	})
	return out, nil
}

func (r memReferrals) CountDirectChildren(ctx context.Context, parentID int) (int, error) {
	count := 0
	r.s.do(ctx, func() {
		for _, e := range r.s.edges {
			if e.ParentID == parentID {
				count++
			}
		}
	})
	return count, nil
}

func (r memReferrals) ChildCounts(ctx context.Context, chainID int) (map[int]int, error) {
	counts := map[int]int{}
	r.s.do(ctx, func() {
		for _, e := range r.s.edges {
			if e.ChainID == chainID {
				counts[e.ParentID]++
			}
		}
	})
	return counts, nil
}

func (r memReferrals) filter(ctx context.Context, keep func(domain.Referral) bool, less func(a, b domain.Referral) bool) []domain.Referral {
	var out []domain.Referral
	r.s.do(ctx, func() {
		for _, e := range r.s.edges {
			if keep(e) {
				out = append(out, e)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r memReferrals) ListByChain(ctx context.Context, chainID int) ([]domain.Referral, error) {
	return r.filter(ctx,
		func(e domain.Referral) bool { return e.ChainID == chainID },
		func(a, b domain.Referral) bool { return a.PositionInChain < b.PositionInChain },
	), nil
}

func (r memReferrals) ListByParent(ctx context.Context, parentID int) ([]domain.Referral, error) {
	return r.filter(ctx,
		func(e domain.Referral) bool { return e.ParentID == parentID },
		func(a, b domain.Referral) bool { return a.ID < b.ID },
	), nil
}

func (r memReferrals) AddEarnings(ctx context.Context, edgeID int, amount decimal.Decimal) error {
	r.s.do(ctx, func() {
		e := r.s.edges[edgeID]
		e.EarningsPaid = e.EarningsPaid.Add(amount)
		r.s.edges[edgeID] = e
	})
	return nil
}

func (r memReferrals) MarkCommissionSettled(ctx context.Context, edgeID int, at time.Time) (bool, error) {
	marked := false
	r.s.do(ctx, func() {
		e := r.s.edges[edgeID]
		if e.CommissionSettledAt != nil {
			return
		}
		e.CommissionSettledAt = &at
		r.s.edges[edgeID] = e
		marked = true
	})
	return marked, nil
}

func (r memReferrals) deactivate(edgeID int) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := r.s.edges[edgeID]
	e.IsActive = false
	r.s.edges[edgeID] = e
}

type memTransactions struct{ s *memState }

func (r memTransactions) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	exists := false
	r.s.do(ctx, func() {
		for _, tx := range r.s.txs {
			if tx.Reference == reference {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r memTransactions) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	var (
		out *domain.Transaction
		err error
	)
	r.s.do(ctx, func() {
		if r.s.failReference != "" && tx.Reference == r.s.failReference {
			err = errInjected
			return
		}
		for _, existing := range r.s.txs {
			if existing.Reference == tx.Reference {
				err = uniqueViolation()
				return
			}
		}
		r.s.nextTx++
		created := *tx
		created.ID = r.s.nextTx
		created.CreatedAt = time.Now()
		created.UpdatedAt = created.CreatedAt
		r.s.txs[created.ID] = created
		out = &created
	})
	return out, err
}

type memNotifier struct {
	mu    sync.Mutex
	count map[domain.NotificationType]int
}

func (n *memNotifier) Notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.count == nil {
		n.count = map[domain.NotificationType]int{}
	}
	n.count[kind]++
	return nil
}

func (n *memNotifier) sent(kind domain.NotificationType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count[kind]
}

type memEnqueuer struct {
	mu    sync.Mutex
	calls int
}

func (e *memEnqueuer) EnqueueLeaderboardRecompute(ctx context.Context, month, year int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	return nil
}
