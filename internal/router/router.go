package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uslu-pos/api/internal/config"
	"github.com/uslu-pos/api/internal/handler"
	mw "github.com/uslu-pos/api/internal/middleware"
	"github.com/uslu-pos/api/internal/service"
	"github.com/uslu-pos/api/internal/storage"
	"github.com/uslu-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Order intake and product listing stay open for the counter terminal;
// reporting and destructive routes sit behind authentication.
func New(cfg *config.Config, svc *service.OrderService, contacts *storage.ContactStore, hub *ws.Hub) (chi.Router, error) {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler, err := handler.NewAuthHandler(cfg.AdminUser, cfg.AdminPassword, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Catalog is read-only and public
	productHandler := handler.NewProductHandler()
	productHandler.RegisterRoutes(r)

	// Order intake and quoting are public; the counter terminal has no login
	orderHandler := handler.NewOrderHandler(svc, hub)
	r.Route("/orders", func(r chi.Router) {
		orderHandler.RegisterRoutes(r)

		// Protected order management
		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(cfg.JWTSecret))
			orderHandler.RegisterAdminRoutes(r)
		})
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		reportsHandler := handler.NewReportsHandler(svc, hub)
		r.Route("/reports", reportsHandler.RegisterRoutes)

		contactHandler := handler.NewContactHandler(contacts)
		r.Route("/contacts", contactHandler.RegisterRoutes)
	})

	log.Println("Router initialized with all handlers")
	return r, nil
}
