package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stockroom/backoffice/application/port/outbound"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

type authUserKey struct{}

type AuthMiddleware struct {
	tokenService outbound.TokenService
	logger       logger.Logger
}

func NewAuthMiddleware(tokenService outbound.TokenService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       log,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token claims on the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Unauthenticated.")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			logger.LogSecurityEvent(r.Context(), m.logger, "invalid_token", "LOW", map[string]interface{}{
				"path": r.URL.Path,
				"ip":   ClientIP(r),
			})
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
	})
}

// RequireRoles only lets through authenticated users holding one of roles.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserClaims(r.Context())
			if claims == nil {
				response.Unauthorized(w, "Unauthenticated.")
				return
			}

			if _, ok := allowed[claims.Role]; !ok {
				logger.LogSecurityEvent(r.Context(), m.logger, "role_denied", "MEDIUM", map[string]interface{}{
					"user_id": claims.UserID,
					"role":    claims.Role,
					"path":    r.URL.Path,
					"method":  r.Method,
				})
				response.FromError(w, apperror.ErrForbidden("role "+claims.Role+" may not access this resource"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithUserClaims(ctx context.Context, claims *outbound.TokenClaims) context.Context {
	return context.WithValue(ctx, authUserKey{}, claims)
}

// GetUserClaims retrieves user claims from context
func GetUserClaims(ctx context.Context) *outbound.TokenClaims {
	if claims, ok := ctx.Value(authUserKey{}).(*outbound.TokenClaims); ok {
		return claims
	}
	return nil
}

// ActorID returns the id of the authenticated user, or nil outside an
// authenticated request.
func ActorID(ctx context.Context) *int64 {
	claims := GetUserClaims(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}
