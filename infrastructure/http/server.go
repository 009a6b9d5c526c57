package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stockroom/backoffice/domain/entity"
	"github.com/stockroom/backoffice/infrastructure/http/handler"
	"github.com/stockroom/backoffice/infrastructure/http/middleware"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Audit     *handler.AuditHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Inventory *handler.InventoryHandler
}

// RouterConfig wires the API. A nil CORS disables cross-origin access and a
// nil RateLimit leaves login unthrottled.
type RouterConfig struct {
	Handlers    Handlers
	Auth        *middleware.AuthMiddleware
	RateLimit   *middleware.RateLimitMiddleware
	CORS        func(http.Handler) http.Handler
	Database    Pinger
	Logger      logger.Logger
	LogRequests bool
}

// NewRouter builds the /v1 API with role checks per route.
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.CorrelationIDMiddleware)
	if cfg.LogRequests {
		router.Use(middleware.RequestLogger(cfg.Logger))
	}

	router.HandleFunc("/health", healthHandler(cfg.Database)).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	h := cfg.Handlers

	login := http.Handler(http.HandlerFunc(h.Auth.Login))
	if cfg.RateLimit != nil {
		login = cfg.RateLimit.RateLimit(login)
	}
	v1.Handle("/login", login).Methods(http.MethodPost)

	api := v1.NewRoute().Subrouter()
	api.Use(cfg.Auth.RequireAuth)

	anyStaff := cfg.Auth.RequireRoles(entity.RoleAdmin, entity.RoleManager, entity.RoleEditor)
	adminOnly := cfg.Auth.RequireRoles(entity.RoleAdmin)
	stockManagers := cfg.Auth.RequireRoles(entity.RoleAdmin, entity.RoleManager)

	route := func(path string, guard func(http.Handler) http.Handler, fn http.HandlerFunc, methods ...string) {
		var next http.Handler = fn
		if guard != nil {
			next = guard(fn)
		}
		api.Handle(path, next).Methods(methods...)
	}

	route("/me", nil, h.Auth.Me, http.MethodGet)
	route("/logout", nil, h.Auth.Logout, http.MethodPost)
	route("/profile", adminOnly, h.Auth.UpdateProfile, http.MethodPut)
	route("/profile/password", adminOnly, h.Auth.UpdatePassword, http.MethodPost)

	route("/dashboard", anyStaff, h.Dashboard.Summary, http.MethodGet)
	route("/audit-logs", adminOnly, h.Audit.List, http.MethodGet)

	route("/categories", anyStaff, h.Category.List, http.MethodGet)
	route("/categories/{id:[0-9]+}", anyStaff, h.Category.Show, http.MethodGet)
	route("/categories", adminOnly, h.Category.Create, http.MethodPost)
	route("/categories/{id:[0-9]+}", adminOnly, h.Category.Update, http.MethodPut)
	route("/categories/{id:[0-9]+}", adminOnly, h.Category.Delete, http.MethodDelete)

	route("/products", anyStaff, h.Product.List, http.MethodGet)
	route("/products/{id:[0-9]+}", anyStaff, h.Product.Show, http.MethodGet)
	route("/products", anyStaff, h.Product.Create, http.MethodPost)
	route("/products/{id:[0-9]+}", anyStaff, h.Product.Update, http.MethodPut, http.MethodPatch)
	route("/products/{id:[0-9]+}", anyStaff, h.Product.Delete, http.MethodDelete)

	route("/inventories", anyStaff, h.Inventory.List, http.MethodGet)
	route("/inventories/{id:[0-9]+}", anyStaff, h.Inventory.Show, http.MethodGet)
	route("/inventories", stockManagers, h.Inventory.Create, http.MethodPost)
	route("/inventories/{id:[0-9]+}", stockManagers, h.Inventory.Update, http.MethodPut)
	route("/inventories/{id:[0-9]+}", stockManagers, h.Inventory.Delete, http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// preflight requests never match a route, so CORS wraps the whole router
	if cfg.CORS != nil {
		return cfg.CORS(router)
	}
	return router
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		response.OK(w, map[string]string{"status": "ok"})
	}
}

// Server wraps http.Server with the API router.
type Server struct {
	server *http.Server
	logger logger.Logger
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func NewServer(config ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		logger: log,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{"addr": s.server.Addr})
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
