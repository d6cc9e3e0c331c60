package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tu-foodies/api/internal/application/auth"
	"github.com/tu-foodies/api/internal/config"
	"github.com/tu-foodies/api/internal/transport/http/handler"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       UserRepository
	Registry       OTPRegistry
	Mailer         Mailer
	GoogleVerifier GoogleVerifier // nil when Google sign-in is unconfigured
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:       deps.UserRepo,
		Registry:       deps.Registry,
		Mailer:         deps.Mailer,
		GoogleVerifier: deps.GoogleVerifier,
	})

	authH := handler.NewAuthHandler(authSvc)
	healthH := handler.NewHealthHandler()

	r.Get("/health-check/{action}", healthH.Ping)
	r.Post("/health-check/{action}", healthH.Ping)

	r.Post("/send-otp", authH.SendOTP)
	r.Post("/verify-otp", authH.VerifyOTP)
	r.Post("/register", authH.Register)
	r.Post("/login", authH.Login)
	r.Post("/google-login", authH.GoogleLogin)

	return r
}
