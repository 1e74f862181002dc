package http

import (
	"net/http"
	"time"

	"github.com/carzilla/auth-api/internal/application/auth"
	"github.com/carzilla/auth-api/internal/application/profile"
	"github.com/carzilla/auth-api/internal/config"
	"github.com/carzilla/auth-api/internal/pkg/clock"
	"github.com/carzilla/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/carzilla/auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public OTP endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		OtpRepo:  deps.OtpRepo,
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
		Signer:   deps.JWTProvider,
		Clock:    clock.Real{},
		AppName:  cfg.AppName,
		OTPTTL:   time.Duration(cfg.OTPTTLMinutes) * time.Minute,
	})
	profileSvc := profile.NewService(deps.UserRepo, deps.SMSSender, cfg.AppName)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(profileSvc)

	r.Get("/health-check", healthH.Ping)

	r.Route("/auth", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/verify-otp", authH.VerifyOTP)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Get("/me", profileH.Get)
			r.Post("/me", profileH.Update)
		})
	})

	return r
}
