package referralservice

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/service/commissionservice"
	"github.com/GlebRadaev/elevatex/internal/service/completionservice"
	"github.com/GlebRadaev/elevatex/internal/service/graphservice"
	"github.com/GlebRadaev/elevatex/internal/service/placementservice"
	"github.com/GlebRadaev/elevatex/pkg/validate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type harness struct {
	st        *memState
	users     memUsers
	chains    memChains
	referrals memReferrals
	notifier  *memNotifier
	enqueuer  *memEnqueuer
	service   *Service
}

func newHarness(fanOut, totalRequired int) *harness {
	return newHarnessWithPayouts(fanOut, totalRequired, []decimal.Decimal{
		decimal.NewFromInt(200),
		decimal.NewFromInt(150),
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
		decimal.NewFromInt(50),
	})
}

func newHarnessWithPayouts(fanOut, totalRequired int, payouts []decimal.Decimal) *harness {
	st := newMemState()
	h := &harness{
		st:        st,
		users:     memUsers{st},
		chains:    memChains{st},
		referrals: memReferrals{st},
		notifier:  &memNotifier{},
		enqueuer:  &memEnqueuer{},
	}
	graph := graphservice.New(h.referrals, h.chains, totalRequired)
	placer := placementservice.New(h.users, h.chains, h.referrals, st, placementservice.Options{
		FanOut:        fanOut,
		TotalRequired: totalRequired,
	})
	commission := commissionservice.New(graph, h.users, h.chains, h.referrals, memTransactions{st}, h.notifier, st, payouts)
	completion := completionservice.New(h.chains, h.users, h.enqueuer, h.notifier, st, totalRequired)
	h.service = New(placer, commission, completion, graph, h.users, h.notifier, "https://elevatex.app")
	return h
}

func (h *harness) join(t *testing.T, name string, activated bool, code string) (domain.User, *domain.PlacementResult) {
	t.Helper()
	u := h.st.addUser(name, activated)
	result, err := h.service.Join(context.Background(), u.ID, code)
	require.NoError(t, err, "join %s", name)
	return u, result
}

func (h *harness) commissionsFor(edgeID int) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range h.st.allTransactions() {
		if tx.Type != domain.TransactionCommission {
			continue
		}
		for level := 1; level <= 5; level++ {
			if tx.Reference == commissionservice.Reference(edgeID, level) {
				out = append(out, tx)
			}
		}
	}
	return out
}

func requireAmount(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.True(t, got.Equal(decimal.NewFromInt(want)), append([]any{"want %d got %s", want, got.String()}, msgAndArgs...)...)
}

func TestScenario_InviterCreditedOnDirectPlacement(t *testing.T) {
	h := newHarness(2, 31)

	a, origin := h.join(t, "A", true, "")
	assert.Nil(t, origin.Edge)
	assert.Equal(t, 1, origin.PositionInChain)

	_, result := h.join(t, "B", false, a.ReferralCode)
	assert.Equal(t, domain.PlacementDirect, result.PlacementType)
	assert.Equal(t, a.ID, result.ParentID)
	assert.Equal(t, origin.ChainID, result.ChainID)
	assert.Equal(t, 2, result.PositionInChain)
	require.NotNil(t, result.Edge)
	assert.Equal(t, 1, result.Edge.Level)

	txs := h.commissionsFor(result.Edge.ID)
	require.Len(t, txs, 1)
	assert.Equal(t, a.ID, txs[0].UserID)
	assert.Equal(t, domain.StatusCompleted, txs[0].Status)
	requireAmount(t, 200, txs[0].Amount)

	requireAmount(t, 200, h.st.user(a.ID).AvailableBalance)
	requireAmount(t, 200, h.st.user(a.ID).TotalEarned)
	assert.Equal(t, 1, h.notifier.sent(domain.NotificationReferral))
	assert.Equal(t, 1, h.notifier.sent(domain.NotificationEarning))
}

func TestScenario_InvalidReferralCode(t *testing.T) {
	h := newHarness(2, 31)
	h.join(t, "A", true, "")

	unknown, err := validate.NewReferralCode()
	require.NoError(t, err)

	b := h.st.addUser("B", true)
	result, err := h.service.Join(context.Background(), b.ID, unknown)
	assert.ErrorIs(t, err, placementservice.ErrInvalidReferralCode)
	assert.Nil(t, result)

	for _, e := range h.st.allEdges() {
		assert.NotEqual(t, b.ID, e.ChildID)
	}
	assert.Equal(t, "B", h.st.user(b.ID).Name)

	_, err = h.service.Join(context.Background(), b.ID, "ELX12345")
	assert.ErrorIs(t, err, placementservice.ErrInvalidReferralCode)
}

func TestScenario_FiveLevelPayouts(t *testing.T) {
	h := newHarness(2, 31)

	var members []domain.User
	code := ""
	for i := 1; i <= 7; i++ {
		u, _ := h.join(t, fmt.Sprintf("U%d", i), true, code)
		members = append(members, u)
		code = u.ReferralCode
	}

	edge, err := h.referrals.FindByChild(context.Background(), members[6].ID)
	require.NoError(t, err)
	txs := h.commissionsFor(edge.ID)
	require.Len(t, txs, 5)

	expected := map[int]int64{
		members[5].ID: 200,
		members[4].ID: 150,
		members[3].ID: 100,
		members[2].ID: 50,
		members[1].ID: 50,
	}
	for _, tx := range txs {
		want, ok := expected[tx.UserID]
		require.True(t, ok, "unexpected credit to user %d", tx.UserID)
		requireAmount(t, want, tx.Amount)
	}

	// U1 sits six levels above U7 and only ever earns from its first five levels.
	requireAmount(t, 200+150+100+50+50, h.st.user(members[0].ID).TotalEarned)
}

func TestScenario_SixthLevelPayoutIgnored(t *testing.T) {
	h := newHarnessWithPayouts(1, 31, []decimal.Decimal{
		decimal.NewFromInt(200),
		decimal.NewFromInt(150),
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
		decimal.NewFromInt(50),
		decimal.NewFromInt(25),
	})

	var members []domain.User
	code := ""
	for i := 1; i <= 7; i++ {
		u, _ := h.join(t, fmt.Sprintf("U%d", i), true, code)
		members = append(members, u)
		code = u.ReferralCode
	}

	edge, err := h.referrals.FindByChild(context.Background(), members[6].ID)
	require.NoError(t, err)
	for _, tx := range h.st.allTransactions() {
		assert.NotEqual(t, commissionservice.Reference(edge.ID, 6), tx.Reference)
	}
	require.Len(t, h.commissionsFor(edge.ID), 5)
	requireAmount(t, 200+150+100+50+50, h.st.user(members[0].ID).TotalEarned)
}

func TestScenario_ChainCompletesOnce(t *testing.T) {
	h := newHarness(2, 31)

	origin, _ := h.join(t, "origin", true, "")
	var last *domain.PlacementResult
	for i := 2; i <= 31; i++ {
		_, last = h.join(t, fmt.Sprintf("M%d", i), false, "")
		assert.Equal(t, i, last.PositionInChain)
	}

	chain, err := h.chains.FindByID(context.Background(), last.ChainID)
	require.NoError(t, err)
	assert.True(t, chain.IsComplete())
	assert.Equal(t, 31, chain.MemberCount)
	assert.Equal(t, []string{domain.BadgeChainMaster}, h.st.user(origin.ID).Badges)
	assert.Equal(t, 1, h.enqueuer.calls)
	assert.Equal(t, 1, h.notifier.sent(domain.NotificationAchievement))

	require.NoError(t, h.service.Reapply(context.Background(), last.Edge))
	require.NoError(t, h.service.Reapply(context.Background(), last.Edge))
	assert.Equal(t, []string{domain.BadgeChainMaster}, h.st.user(origin.ID).Badges)
	assert.Equal(t, 1, h.enqueuer.calls)
	assert.Equal(t, 1, h.notifier.sent(domain.NotificationAchievement))

	next, result := h.join(t, "overflow", false, "")
	assert.NotEqual(t, last.ChainID, result.ChainID)
	assert.Equal(t, 1, result.PositionInChain)
	assert.Nil(t, result.Edge)

	members, err := h.service.graph.GetChainMembers(context.Background(), result.ChainID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, next.ID, members[0].UserID)
}

func TestScenario_ConcurrentDirectPlacementUnderSingleSlot(t *testing.T) {
	for run := 0; run < 20; run++ {
		h := newHarness(1, 31)
		a, _ := h.join(t, "A", true, "")
		b := h.st.addUser("B", false)
		c := h.st.addUser("C", false)

		results := make([]*domain.PlacementResult, 2)
		var wg sync.WaitGroup
		for i, u := range []domain.User{b, c} {
			wg.Add(1)
			go func(i int, u domain.User) {
				defer wg.Done()
				r, err := h.service.Join(context.Background(), u.ID, a.ReferralCode)
				assert.NoError(t, err)
				results[i] = r
			}(i, u)
		}
		wg.Wait()

		direct, system := 0, 0
		for _, r := range results {
			require.NotNil(t, r)
			switch r.PlacementType {
			case domain.PlacementDirect:
				direct++
				assert.Equal(t, a.ID, r.ParentID)
			case domain.PlacementSystem:
				system++
			}
		}
		assert.Equal(t, 1, direct)
		assert.Equal(t, 1, system)

		count, err := h.referrals.CountDirectChildren(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	}
}

func TestCommission_NoRetroactiveBackfill(t *testing.T) {
	h := newHarness(2, 31)

	a, _ := h.join(t, "A", false, "")
	_, result := h.join(t, "B", true, a.ReferralCode)
	assert.Empty(t, h.commissionsFor(result.Edge.ID))

	h.st.mu.Lock()
	activated := h.st.users[a.ID]
	activated.IsActivated = true
	h.st.users[a.ID] = activated
	h.st.mu.Unlock()

	require.NoError(t, h.service.Reapply(context.Background(), result.Edge))
	assert.Empty(t, h.commissionsFor(result.Edge.ID))
	assert.True(t, h.st.user(a.ID).AvailableBalance.IsZero())

	_, later := h.join(t, "C", false, a.ReferralCode)
	require.Len(t, h.commissionsFor(later.Edge.ID), 1)
	requireAmount(t, 200, h.st.user(a.ID).AvailableBalance)
}

func TestCommission_InactiveEdgePaysNothing(t *testing.T) {
	h := newHarness(2, 31)

	a, _ := h.join(t, "A", true, "")
	b, _ := h.join(t, "B", true, a.ReferralCode)
	edgeAB, err := h.referrals.FindByChild(context.Background(), b.ID)
	require.NoError(t, err)
	h.referrals.deactivate(edgeAB.ID)

	_, result := h.join(t, "C", false, b.ReferralCode)
	txs := h.commissionsFor(result.Edge.ID)
	require.Len(t, txs, 1)
	assert.Equal(t, b.ID, txs[0].UserID)
	requireAmount(t, 200, h.st.user(a.ID).AvailableBalance, "A only earns from B's own edge")
}

func TestCommission_FailureRollsBackAndRetries(t *testing.T) {
	h := newHarness(2, 31)

	a, _ := h.join(t, "A", true, "")
	b, first := h.join(t, "B", true, a.ReferralCode)
	requireAmount(t, 200, h.st.user(a.ID).AvailableBalance)

	h.st.mu.Lock()
	h.st.failReference = commissionservice.Reference(first.Edge.ID+1, 2)
	h.st.mu.Unlock()

	_, second := h.join(t, "C", false, b.ReferralCode)
	require.NotNil(t, second.Edge)
	assert.Empty(t, h.commissionsFor(second.Edge.ID))
	assert.True(t, h.st.user(b.ID).AvailableBalance.IsZero(), "level 1 credit rolled back with level 2")
	requireAmount(t, 200, h.st.user(a.ID).AvailableBalance)

	edge, err := h.referrals.FindByID(context.Background(), second.Edge.ID)
	require.NoError(t, err)
	assert.False(t, edge.CommissionSettled())
	assert.True(t, edge.EarningsPaid.IsZero())

	h.st.mu.Lock()
	h.st.failReference = ""
	h.st.mu.Unlock()

	require.NoError(t, h.service.Reapply(context.Background(), second.Edge))
	assert.Len(t, h.commissionsFor(second.Edge.ID), 2)
	requireAmount(t, 200, h.st.user(b.ID).AvailableBalance)
	requireAmount(t, 350, h.st.user(a.ID).AvailableBalance)
}

func TestProperties_RandomPopulation(t *testing.T) {
	for _, fanOut := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("fan-out %d", fanOut), func(t *testing.T) {
			h := newHarness(fanOut, 31)
			rng := rand.New(rand.NewSource(int64(fanOut)))

			var placed []domain.User
			for i := 0; i < 200; i++ {
				code := ""
				if len(placed) > 0 && rng.Intn(3) > 0 {
					code = placed[rng.Intn(len(placed))].ReferralCode
				}
				u, _ := h.join(t, fmt.Sprintf("U%d", i), rng.Intn(2) == 0, code)
				placed = append(placed, u)
			}

			checkInvariants(t, h, fanOut)

			before := h.st.snapshot()
			for _, e := range h.st.allEdges() {
				e := e
				require.NoError(t, h.service.Reapply(context.Background(), &e))
			}
			after := h.st.snapshot()
			assert.Equal(t, len(before.txs), len(after.txs), "replay wrote transactions")
			for id, u := range before.users {
				assert.True(t, u.AvailableBalance.Equal(after.users[id].AvailableBalance), "user %d balance changed on replay", id)
			}

			for _, u := range placed {
				_, err := h.service.Join(context.Background(), u.ID, "")
				assert.ErrorIs(t, err, placementservice.ErrDuplicatePlacement)
			}
			assert.Equal(t, len(before.edges), len(h.st.allEdges()))
		})
	}
}

func TestProperties_ConcurrentPopulation(t *testing.T) {
	h := newHarness(2, 31)
	root, _ := h.join(t, "root", true, "")

	users := make([]domain.User, 120)
	for i := range users {
		users[i] = h.st.addUser(fmt.Sprintf("U%d", i), i%3 != 0)
	}

	var g errgroup.Group
	g.SetLimit(8)
	for i, u := range users {
		u := u
		code := ""
		if i%2 == 0 {
			code = root.ReferralCode
		}
		g.Go(func() error {
			_, err := h.service.Join(context.Background(), u.ID, code)
			return err
		})
	}
	require.NoError(t, g.Wait())

	checkInvariants(t, h, 2)
}

func checkInvariants(t *testing.T, h *harness, fanOut int) {
	t.Helper()
	ctx := context.Background()
	edges := h.st.allEdges()

	parents := map[int]int{}
	children := map[int]int{}
	positions := map[int]map[int]bool{}
	for _, e := range edges {
		_, dup := parents[e.ChildID]
		assert.False(t, dup, "user %d has two parent edges", e.ChildID)
		parents[e.ChildID] = e.ParentID
		children[e.ParentID]++
		if positions[e.ChainID] == nil {
			positions[e.ChainID] = map[int]bool{}
		}
		assert.False(t, positions[e.ChainID][e.PositionInChain], "duplicate position %d in chain %d", e.PositionInChain, e.ChainID)
		positions[e.ChainID][e.PositionInChain] = true
	}

	for parent, n := range children {
		assert.LessOrEqual(t, n, fanOut, "user %d exceeds fan-out", parent)
	}

	h.st.mu.Lock()
	chains := make([]domain.Chain, 0, len(h.st.chains))
	for _, c := range h.st.chains {
		chains = append(chains, c)
	}
	h.st.mu.Unlock()

	for _, c := range chains {
		members, err := h.service.graph.GetChainMembers(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, members, c.MemberCount, "chain %d member count", c.ID)
		for i, m := range members {
			assert.Equal(t, i+1, m.PositionInChain, "chain %d has a gap", c.ID)
		}
		assert.LessOrEqual(t, c.MemberCount, 31)
	}

	for child := range parents {
		ancestors, err := h.service.graph.(*graphservice.Service).GetAncestors(ctx, child, len(edges)+1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(ancestors), len(edges), "cycle above user %d", child)
	}

	h.st.mu.Lock()
	defer h.st.mu.Unlock()
	for _, u := range h.st.users {
		assert.False(t, u.AvailableBalance.IsNegative(), "user %d negative balance", u.ID)
		assert.False(t, u.PendingWithdrawals.IsNegative())
	}
	for _, tx := range h.st.txs {
		if tx.Type == domain.TransactionCommission {
			assert.True(t, h.st.users[tx.UserID].IsActivated, "commission %s credited an inactive user", tx.Reference)
		}
	}
}
