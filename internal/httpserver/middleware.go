package httpserver

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	authdomain "realty/backend/internal/domain/auth"

	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func withLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)
		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("size", recorder.size),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func withCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := false
		switch {
		case origin != "" && isOriginAllowed(origin, allowedOrigins):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			allowed = true
		case origin == "" && len(allowedOrigins) == 1 && allowedOrigins[0] == "*":
			w.Header().Set("Access-Control-Allow-Origin", "*")
			allowed = true
		}
		if allowed {
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+csrfHeaderName)
		}
		if r.Method == http.MethodOptions {
			if !allowed {
				writeError(w, http.StatusForbidden, "origin not allowed")
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isOriginAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == "*" {
			return true
		}
		if strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}

// authMiddleware validates the bearer token and stores its identity claims in
// the request context. Verification is pure token checking; the store is not
// consulted.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := s.identityFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or missing authorization token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyIdentity{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// csrfMiddleware enforces the double-submit check on state-changing routes.
// The header token must verify against the CSRF secret and its nonce must
// match the one bound into the bearer token. Runs after authMiddleware.
func (s *Server) csrfMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !s.csrfTokenBound(r.Header.Get(csrfHeaderName), identity) {
			writeError(w, http.StatusForbidden, authdomain.ErrCSRFInvalid.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// csrfTokenBound reports whether header carries a valid CSRF token bound to
// the identity's session. Any failure collapses to false.
func (s *Server) csrfTokenBound(header string, identity authdomain.Identity) bool {
	if header == "" || identity.CSRFNonce == "" {
		return false
	}
	nonce, err := s.csrf.Validate(header)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(nonce), []byte(identity.CSRFNonce)) == 1
}

func (s *Server) identityFromRequest(r *http.Request) (authdomain.Identity, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		if cookie, err := r.Cookie(authCookieName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return authdomain.Identity{}, false
	}
	identity, err := s.tokens.Validate(token)
	if err != nil {
		return authdomain.Identity{}, false
	}
	return identity, true
}

// requireGuard applies the bearer and CSRF checks to handlers whose route
// also serves unauthenticated methods. Writes the error response on failure.
func (s *Server) requireGuard(w http.ResponseWriter, r *http.Request) (authdomain.Identity, bool) {
	identity, ok := s.identityFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return authdomain.Identity{}, false
	}
	if !s.csrfTokenBound(r.Header.Get(csrfHeaderName), identity) {
		writeError(w, http.StatusForbidden, authdomain.ErrCSRFInvalid.Error())
		return authdomain.Identity{}, false
	}
	return identity, true
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if identity.Role != authdomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin privileges required")
		return false
	}
	return true
}

type ctxKeyIdentity struct{}

func identityFromContext(ctx context.Context) (authdomain.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity{}).(authdomain.Identity)
	return identity, ok
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
