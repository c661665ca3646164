package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/elevatex/docs"
	authhandlers "github.com/GlebRadaev/elevatex/internal/handlers/auth"
	leaderboardhandlers "github.com/GlebRadaev/elevatex/internal/handlers/leaderboard"
	notificationhandlers "github.com/GlebRadaev/elevatex/internal/handlers/notifications"
	referralhandlers "github.com/GlebRadaev/elevatex/internal/handlers/referrals"
	wallethandlers "github.com/GlebRadaev/elevatex/internal/handlers/wallet"
	webhookhandlers "github.com/GlebRadaev/elevatex/internal/handlers/webhooks"
	"github.com/GlebRadaev/elevatex/internal/metrics"
	"github.com/GlebRadaev/elevatex/internal/service"
	"github.com/GlebRadaev/elevatex/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ResendOTP(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Tree(w http.ResponseWriter, r *http.Request)
	Chain(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Join(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	Fund(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type LeaderboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Badges(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Payments(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler         AuthHandler
	ReferralHandler     ReferralHandler
	WalletHandler       WalletHandler
	NotificationHandler NotificationHandler
	LeaderboardHandler  LeaderboardHandler
	WebhookHandler      WebhookHandler
	Middlewares         Middlewares
}

// Middlewares guard route groups. Authenticate defaults to the plain JWT
// check and a nil rate limit lets requests through.
type Middlewares struct {
	Authenticate  func(http.Handler) http.Handler
	AuthRateLimit func(http.Handler) http.Handler
	OTPRateLimit  func(http.Handler) http.Handler
}

func (m Middlewares) withDefaults() Middlewares {
	if m.Authenticate == nil {
		m.Authenticate = auth.AuthMiddleware
	}
	if m.AuthRateLimit == nil {
		m.AuthRateLimit = passthrough
	}
	if m.OTPRateLimit == nil {
		m.OTPRateLimit = passthrough
	}
	return m
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func New(s *service.Services, webhookSecret string, mw Middlewares) *Handlers {
	return &Handlers{
		Middlewares:         mw,
		AuthHandler:         authhandlers.New(s.AuthService),
		ReferralHandler:     referralhandlers.New(s.ReferralService),
		WalletHandler:       wallethandlers.New(s.WalletService),
		NotificationHandler: notificationhandlers.New(s.NotificationService),
		LeaderboardHandler:  leaderboardhandlers.New(s.LeaderboardService),
		WebhookHandler:      webhookhandlers.New(s.WalletService, webhookSecret),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	mw := h.Middlewares.withDefaults()
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(mw.AuthRateLimit).Post("/signup", h.AuthHandler.Signup)
			r.With(mw.AuthRateLimit).Post("/login", h.AuthHandler.Login)
			r.With(mw.AuthRateLimit).Post("/forgot-password", h.AuthHandler.ForgotPassword)
			r.With(mw.AuthRateLimit).Post("/reset-password", h.AuthHandler.ResetPassword)
			r.With(mw.OTPRateLimit).Post("/verify-otp", h.AuthHandler.VerifyOTP)
			r.With(mw.OTPRateLimit).Post("/resend-otp", h.AuthHandler.ResendOTP)
			r.With(mw.Authenticate).Post("/logout", h.AuthHandler.Logout)
		})
		r.Post("/webhooks/payments", h.WebhookHandler.Payments)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)
			r.Get("/users/me", h.AuthHandler.Me)
			r.Put("/users/me", h.AuthHandler.UpdateProfile)
			r.Route("/referrals", func(r chi.Router) {
				r.Get("/", h.ReferralHandler.List)
				r.Get("/tree", h.ReferralHandler.Tree)
				r.Get("/chain", h.ReferralHandler.Chain)
				r.Post("/generate", h.ReferralHandler.Generate)
				r.Post("/join", h.ReferralHandler.Join)
			})
			r.Route("/wallet", func(r chi.Router) {
				r.Get("/balance", h.WalletHandler.GetBalance)
				r.Post("/activate", h.WalletHandler.Activate)
				r.Post("/withdraw", h.WalletHandler.Withdraw)
				r.Post("/fund", h.WalletHandler.Fund)
				r.Get("/transactions", h.WalletHandler.GetTransactions)
			})
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.NotificationHandler.List)
				r.Put("/{id}/read", h.NotificationHandler.MarkRead)
			})
			r.Route("/leaderboard", func(r chi.Router) {
				r.Get("/", h.LeaderboardHandler.Get)
				r.Get("/badges", h.LeaderboardHandler.Badges)
			})
		})
	})

	return r
}
