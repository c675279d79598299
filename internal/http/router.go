package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/MrJamesThe3rd/invoicer/internal/http/auth"
	"github.com/MrJamesThe3rd/invoicer/internal/http/client"
	"github.com/MrJamesThe3rd/invoicer/internal/http/company"
	"github.com/MrJamesThe3rd/invoicer/internal/http/importcsv"
	"github.com/MrJamesThe3rd/invoicer/internal/http/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/http/item"
	"github.com/MrJamesThe3rd/invoicer/internal/http/report"
)

type Config struct {
	AllowedOrigins []string
	// RateLimit is requests per minute per client IP. Zero disables limiting.
	RateLimit int
	JWTSecret string
	Timeout   time.Duration
}

func New(
	cfg Config,
	profiles auth.ProfileChecker,
	companyV1 *company.Handler,
	clientsV1 *client.Handler,
	itemsV1 *item.Handler,
	invoicesV1 *invoice.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	headers := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(headers.Handler)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.Timeout > 0 {
		router.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.RateLimit > 0 {
		router.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Bearer(cfg.JWTSecret))

		r.Route("/company", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			companyV1.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/items", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			itemsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireProfile(profiles))

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)
		})
	})

	return router
}
