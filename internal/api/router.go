package api

import (
	"net/http"
	"time"

	"petrocore-backend/internal/config"
	"petrocore-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler      *handlers.AuthHandler
	ChatHandler      *handlers.ChatHandler
	DemoHandler      *handlers.DemoHandler
	GDPRHandler      *handlers.GDPRHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	RateLimiter      *RateLimiter
	Config           *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)                 // Inject request ID into context
	r.Use(middleware.RealIP)                    // Use X-Forwarded-For or X-Real-IP
	r.Use(middleware.Logger)                    // Log requests (consider a structured logger)
	r.Use(middleware.Recoverer)                 // Recover from panics, return 500
	r.Use(middleware.Timeout(60 * time.Second)) // Set a request timeout

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"}, // Add your frontend dev/prod URLs
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// The caller owns the limiter's cleanup lifecycle; routers built without
	// one (tests, mostly) get a limiter with no background loop.
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(deps.Config.RateLimitPerSecond, deps.Config.RateLimitBurst)
	}

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Public Visitor Routes (rate limited per client IP) ---
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)

		if deps.ChatHandler == nil {
			panic("ChatHandler dependency is nil in router setup")
		}
		r.Post("/v1/chat/message", deps.ChatHandler.HandleMessage)

		if deps.DemoHandler == nil {
			panic("DemoHandler dependency is nil in router setup")
		}
		r.Post("/v1/demo-requests", deps.DemoHandler.HandleCreate)

		if deps.GDPRHandler == nil {
			panic("GDPRHandler dependency is nil in router setup")
		}
		r.Post("/v1/gdpr/requests", deps.GDPRHandler.HandleCreate)
	})

	// --- Authenticated Admin Routes (JWT Required) ---
	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

		r.Route("/demo-requests", func(r chi.Router) {
			r.Get("/", deps.DemoHandler.HandleList)
			r.Get("/{requestID}", deps.DemoHandler.HandleGet)
			r.Patch("/{requestID}/status", deps.DemoHandler.HandleUpdateStatus)
		})

		r.Route("/gdpr/requests", func(r chi.Router) {
			r.Get("/", deps.GDPRHandler.HandleList)
			r.Get("/{requestID}", deps.GDPRHandler.HandleGet)
			r.Patch("/{requestID}/status", deps.GDPRHandler.HandleUpdateStatus)
		})

		if deps.AnalyticsHandler != nil {
			r.Get("/analytics/report", deps.AnalyticsHandler.HandleReport)
		}
	})

	return r
}
