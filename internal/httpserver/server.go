package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"realty/backend/internal/config"
	authdomain "realty/backend/internal/domain/auth"
	articleusecase "realty/backend/internal/usecase/article"
	authusecase "realty/backend/internal/usecase/auth"
	resetusecase "realty/backend/internal/usecase/passwordreset"
	propertyusecase "realty/backend/internal/usecase/property"
	userusecase "realty/backend/internal/usecase/user"

	"go.uber.org/zap"
)

// TokenManager abstracts bearer token issuance and verification.
type TokenManager interface {
	Generate(identity authdomain.Identity, csrfNonce string) (string, error)
	Validate(token string) (authdomain.Identity, error)
}

// CSRFManager abstracts CSRF token issuance and verification.
type CSRFManager interface {
	Generate() (token, nonce string, err error)
	Validate(token string) (nonce string, err error)
}

// Services bundles the use-case services the server dispatches to.
type Services struct {
	Auth          *authusecase.Service
	Users         *userusecase.Service
	Properties    *propertyusecase.Service
	Articles      *articleusecase.Service
	PasswordReset *resetusecase.Service
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer     *http.Server
	router         *http.ServeMux
	services       Services
	tokens         TokenManager
	csrf           CSRFManager
	logger         *zap.Logger
	tokenExpiry    time.Duration
	allowedOrigins []string
	addr           string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, logger *zap.Logger, tokens TokenManager, csrf CSRFManager, services Services) *Server {
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	handler := withLogging(withCORS(mux, cfg.AllowedOrigins), logger)

	srv := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
		},
		router:         mux,
		services:       services,
		tokens:         tokens,
		csrf:           csrf,
		logger:         logger,
		tokenExpiry:    cfg.TokenExpiry,
		allowedOrigins: cfg.AllowedOrigins,
		addr:           addr,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))

	s.router.Handle("/api/auth/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/api/auth/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/api/auth/password-change", s.authMiddleware(s.csrfMiddleware(http.HandlerFunc(s.handleChangePassword))))

	s.router.Handle("/api/password-reset/request", http.HandlerFunc(s.handleResetRequest))
	s.router.Handle("/api/password-reset/reset", http.HandlerFunc(s.handleResetComplete))

	s.router.Handle("/api/users", s.authMiddleware(http.HandlerFunc(s.handleUsers)))
	s.router.Handle("/api/users/", s.authMiddleware(http.HandlerFunc(s.handleUserSubroutes)))

	s.router.Handle("/api/properties/create", s.guarded(http.HandlerFunc(s.handlePropertyCreate)))
	s.router.Handle("/api/properties/update", s.guarded(http.HandlerFunc(s.handlePropertyUpdate)))
	s.router.Handle("/api/properties/delete/", s.guarded(http.HandlerFunc(s.handlePropertyDelete)))
	s.router.Handle("/api/properties/find/", http.HandlerFunc(s.handlePropertyFind))
	s.router.Handle("/api/properties/filter", http.HandlerFunc(s.handlePropertyFilter))

	s.router.Handle("/api/articles", http.HandlerFunc(s.handleArticles))
	s.router.Handle("/api/articles/search", http.HandlerFunc(s.handleArticleSearch))
	s.router.Handle("/api/articles/delete/", s.guarded(http.HandlerFunc(s.handleArticleDelete)))
	s.router.Handle("/api/articles/", http.HandlerFunc(s.handleArticleByID))
}

// guarded chains the bearer and CSRF checks applied to state-changing
// routes.
func (s *Server) guarded(next http.Handler) http.Handler {
	return s.authMiddleware(s.csrfMiddleware(next))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying ServeMux so tests can drive it directly.
func (s *Server) Router() *http.ServeMux {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
