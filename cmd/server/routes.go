package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Simplici0/bizness/internal/aiproxy"
	"github.com/Simplici0/bizness/internal/assistant"
	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/logging"
	"github.com/Simplici0/bizness/internal/metrics"
	"github.com/Simplici0/bizness/internal/ocr"
	"github.com/Simplici0/bizness/internal/store"
)

type server struct {
	auth    *auth.Service
	store   *store.Store
	ocr     *ocr.Service
	invoker assistant.Invoker
	origins []string
}

func (s *server) routes(logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/functions/v1", aiproxy.New(s.invoker, s.auth).Routes(s.origins))

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Identify)

		r.Get("/login", s.handleLoginForm)
		r.Post("/login", s.handleLoginSubmit)
		r.Get("/register", s.handleRegisterForm)
		r.Post("/register", s.handleRegisterSubmit)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequirePage)
			r.Get("/", s.handleDashboard)
			r.Post("/businesses", s.handleBusinessCreate)
			r.Post("/businesses/{businessID}/select", s.handleBusinessSelect)
			r.Get("/workspace", s.handleWorkspace)
			r.Post("/workspace/products", s.handleProductCreatePage)
			r.Get("/workspace/calculator", s.handleCalculatorForm)
			r.Post("/workspace/calculator", s.handleCalculatorSubmit)

			r.With(auth.RequireRole(auth.RoleAdmin)).Get("/admin", s.handleAdmin)
		})

		r.Route("/api", s.apiRoutes)
	})

	return r
}

func (s *server) apiRoutes(r chi.Router) {
	r.Post("/login", s.handleAPILogin)
	r.Post("/register", s.handleAPIRegister)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAPI)

		r.Get("/me", s.handleMe)
		r.Post("/calculator", s.handleCalculate)

		r.Get("/current-business", s.handleCurrentBusiness)
		r.Delete("/current-business", s.handleCurrentBusinessClear)

		r.Get("/businesses", s.handleBusinessList)
		r.Post("/businesses", s.handleBusinessCreateAPI)
		r.Route("/businesses/{businessID}", func(r chi.Router) {
			r.Use(s.businessAccess)

			r.Get("/", s.handleBusinessGet)
			r.Put("/", s.handleBusinessUpdate)
			r.Delete("/", s.handleBusinessDelete)
			r.Post("/select", s.handleBusinessSelectAPI)
			r.Get("/overview", s.handleOverview)

			r.Get("/products", s.handleProductList)
			r.Post("/products", s.handleProductCreate)
			r.Get("/products/{productID}", s.handleProductGet)
			r.Put("/products/{productID}", s.handleProductUpdate)
			r.Delete("/products/{productID}", s.handleProductDelete)

			r.Get("/files", s.handleFileList)
			r.Post("/files", s.handleFileCreate)
			r.Delete("/files/{fileID}", s.handleFileDelete)

			r.Get("/transactions", s.handleTransactionList)
			r.Post("/transactions", s.handleTransactionCreate)

			r.Post("/ocr/scan", s.handleOCRScan)
			r.Get("/ocr/history", s.handleOCRHistory)
		})

		r.With(auth.RequireRole(auth.RoleAdmin)).Get("/admin/users", s.handleAdminUsers)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DB().PingContext(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
