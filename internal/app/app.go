package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/elevatex/internal/config"
	"github.com/GlebRadaev/elevatex/internal/handlers"
	"github.com/GlebRadaev/elevatex/internal/payout"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/GlebRadaev/elevatex/internal/queue"
	"github.com/GlebRadaev/elevatex/internal/reconcile"
	"github.com/GlebRadaev/elevatex/internal/repo"
	"github.com/GlebRadaev/elevatex/internal/service"
	"github.com/GlebRadaev/elevatex/pkg/auth"
	"github.com/GlebRadaev/elevatex/pkg/clients"
	"github.com/GlebRadaev/elevatex/pkg/logger"
	"github.com/GlebRadaev/elevatex/pkg/otpstore"
	"github.com/GlebRadaev/elevatex/pkg/ratelimit"
	"github.com/GlebRadaev/elevatex/pkg/sms"
	"github.com/GlebRadaev/elevatex/pkg/tokenstore"
)

const queueConcurrency = 4

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	api       *handlers.Handlers
	srv       *service.Services
	repo      *repo.Repositories
	payouts   *payout.Service
	reconcile *reconcile.Service

	redis       *redis.Client
	queueClient *asynq.Client
	queueServer *asynq.Server

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		zap.L().Error("invalid configuration", zap.Error(err))
		return fmt.Errorf("invalid configuration: %w", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	a.redis = otpstore.NewClient(cfg.RedisAddress, cfg.RedisPassword)
	if err := a.redis.Ping(ctx).Err(); err != nil {
		zap.L().Error("redis ping failed: ", zap.Error(err))
		return fmt.Errorf("can't reach redis: %w", err)
	}
	redisOpt := queue.RedisOpt(cfg.RedisAddress, cfg.RedisPassword)
	a.queueClient = asynq.NewClient(redisOpt)

	denylist := tokenstore.New(a.redis)
	limiter := ratelimit.New(a.redis)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv, err = service.New(a.repo, cfg, service.Deps{
		OTPStore: otpstore.New(a.redis),
		SMS:      sms.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber),
		Revoker:  denylist,
		Enqueuer: queue.NewClient(a.queueClient),
	})
	if err != nil {
		return fmt.Errorf("can't build services: %w", err)
	}
	a.api = handlers.New(a.srv, cfg.WebhookSecret, handlers.Middlewares{
		Authenticate:  auth.Authenticator(denylist),
		AuthRateLimit: limiter.Middleware("auth", ratelimit.Rule{Limit: cfg.AuthRateLimit, Window: cfg.AuthRateWindow}),
		OTPRateLimit:  limiter.Middleware("otp", ratelimit.Rule{Limit: cfg.OTPRateLimit, Window: cfg.OTPRateWindow}),
	})
	a.payouts = payout.New(cfg.GatewayAddress, a.repo.TransactionRepo, a.srv.WalletService, clients.NewHTTPClient(), cfg.PayoutPollInterval)
	a.reconcile = reconcile.New(a.repo.UserRepo, a.repo.ReferralRepo, a.srv.Referrals, cfg.ReconcileInterval)
	a.queueServer = queue.NewServer(redisOpt, queueConcurrency)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startQueueServer(ctx)
	a.startWorkers(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startQueueServer(ctx context.Context) {
	mux := queue.NewHandler(a.srv.Recomputer).Mux()
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.queueServer.Start(mux); err != nil {
			a.errCh <- fmt.Errorf("queue server exited with error: %w", err)
			return
		}
		<-ctx.Done()
		a.queueServer.Shutdown()
		a.queueClient.Close()
		a.redis.Close()
	}()
}

func (a *Application) startWorkers(ctx context.Context) {
	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		a.payouts.Start(ctx)
	}()
	go func() {
		defer a.wg.Done()
		a.reconcile.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
