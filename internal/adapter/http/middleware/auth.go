package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

// Auth validates the bearer JWT and injects its claims into the context.
// Missing or invalid tokens get 401.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if h.tokens == nil {
			h.log.Warn(ctx, "protected route without token validator")
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := h.tokens.Validate(ctx, token)
		if err != nil || claims == nil {
			h.log.Warn(ctx, "failed to authenticate request", "error", fmt.Sprint(err))
			w.Header().Set("WWW-Authenticate", "Bearer")
			errorResponse(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx = models.WithClaims(ctx, claims)
		ctx = wrap.WithUserID(ctx, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows only callers whose token carries one of the given roles.
// Usage: mux.Handle("GET /reports", m.Auth(m.RequireRoles(h.ListReports, types.RoleAdmin)))
func (h *Middleware) RequireRoles(next http.HandlerFunc, allowedRoles ...types.UserRole) http.Handler {
	allowed := make(map[types.UserRole]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := models.ClaimsFromContext(r.Context())
		if claims == nil {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[types.UserRole(claims.Role)]; !ok {
				errorResponse(w, http.StatusForbidden, "forbidden: insufficient role")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
