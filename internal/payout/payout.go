package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/pkg/clients"
	"github.com/GlebRadaev/elevatex/pkg/workerpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=payout.go -destination=mock_payout.go -package=payout

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	batchLimit    = 100
	poolSize      = 10
)

const (
	GatewayPending = "PENDING"
	GatewaySuccess = "SUCCESS"
	GatewayFailed  = "FAILED"
)

var (
	ErrReferenceMismatch = errors.New("gateway answered for another reference")
	ErrUnexpectedStatus  = errors.New("unexpected gateway status code")
)

// gatewayTypes are the transaction types whose outcome the gateway decides.
var gatewayTypes = []domain.TransactionType{
	domain.TransactionActivation,
	domain.TransactionWithdrawal,
	domain.TransactionFund,
}

type TransactionRepo interface {
	ListPending(ctx context.Context, txType domain.TransactionType, limit int) ([]domain.Transaction, error)
}

type Confirmer interface {
	ConfirmPayment(ctx context.Context, reference string, succeeded bool) (*domain.Transaction, error)
}

type Response struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Service polls the payment gateway for activations, withdrawals and wallet
// fundings still pending and confirms them once the gateway reports an outcome.
type Service struct {
	url             string
	transactionRepo TransactionRepo
	confirmer       Confirmer
	client          clients.HTTPClientI
	workerPool      workerpool.WorkerPoolI
	updateInterval  time.Duration
	sleep           func(ctx context.Context, d time.Duration) error

	inFlight sync.Map
}

func New(gatewayURL string, transactionRepo TransactionRepo, confirmer Confirmer, client clients.HTTPClientI, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Second * 5
	}
	return &Service{
		url:             gatewayURL,
		transactionRepo: transactionRepo,
		confirmer:       confirmer,
		client:          client,
		workerPool:      workerpool.New("payout", poolSize),
		updateInterval:  interval,
		sleep:           sleepCtx,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("payout poller started", zap.Duration("interval", s.updateInterval))
	s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping payout poller")
			return
		case <-ticker.C:
			s.processPending(ctx)
		}
	}
}

func (s *Service) processPending(ctx context.Context) {
	var pending []domain.Transaction
	for _, txType := range gatewayTypes {
		txs, err := s.transactionRepo.ListPending(ctx, txType, batchLimit)
		if err != nil {
			zap.L().Error("failed to fetch pending payments", zap.String("type", string(txType)), zap.Error(err))
			return
		}
		pending = append(pending, txs...)
	}

	var g errgroup.Group
	for _, tx := range pending {
		tx := tx

		if _, loaded := s.inFlight.LoadOrStore(tx.Reference, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(tx.Reference)
				return s.handlePayment(ctx, tx)
			})
			if err != nil {
				s.inFlight.Delete(tx.Reference)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error scheduling payment checks", zap.Error(err))
	}
}

func (s *Service) handlePayment(ctx context.Context, tx domain.Transaction) error {
	endpoint := s.url + "/api/payouts/" + url.PathEscape(tx.Reference)

	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, respBody, respHeaders, err := s.client.Get(ctx, endpoint, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt < maxRetries {
				if err := s.sleep(ctx, retryInterval*time.Duration(attempt)); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("failed to check payment %s after %d retries: %w", tx.Reference, maxRetries, err)
		}

		switch statusCode {
		case http.StatusOK:
			return s.processStatus(ctx, tx, respBody)
		case http.StatusTooManyRequests:
			if err := s.sleep(ctx, retryAfter(respHeaders, attempt)); err != nil {
				return err
			}
			continue
		case http.StatusNotFound, http.StatusNoContent:
			zap.L().Warn("payment not known to the gateway yet", zap.String("reference", tx.Reference), zap.Int("attempt", attempt))
			return nil
		default:
			zap.L().Error("unexpected gateway status code", zap.Int("status", statusCode), zap.String("reference", tx.Reference))
			return ErrUnexpectedStatus
		}
	}
	return nil
}

func (s *Service) processStatus(ctx context.Context, tx domain.Transaction, respBody []byte) error {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if response.Reference != tx.Reference {
		return fmt.Errorf("%w: expected %s, got %s", ErrReferenceMismatch, tx.Reference, response.Reference)
	}

	switch response.Status {
	case GatewayPending:
		zap.L().Debug("payment still pending", zap.String("reference", tx.Reference))
		return nil
	case GatewaySuccess, GatewayFailed:
		if _, err := s.confirmer.ConfirmPayment(ctx, tx.Reference, response.Status == GatewaySuccess); err != nil {
			return fmt.Errorf("failed to confirm payment %s: %w", tx.Reference, err)
		}
		return nil
	default:
		zap.L().Warn("unrecognized gateway status", zap.String("reference", tx.Reference), zap.String("status", response.Status))
		return nil
	}
}

func retryAfter(headers http.Header, attempt int) time.Duration {
	wait := retryInterval * time.Duration(attempt)
	if raw := headers.Get("Retry-After"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
			wait = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("gateway rate limit, backing off", zap.Int("attempt", attempt), zap.Duration("retryAfter", wait))
	return wait
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
