package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser   contextKey = "user"
	ContextKeyMember contextKey = "member"
)

// AuthMiddleware valida o token Bearer quando presente. Requisições sem
// Authorization seguem anônimas.
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthcheck" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				code := apiErrors.ErrInvalidToken
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) && authErr.Code != "" {
					code = authErr.Code
				}
				apiErrors.WriteError(w, code, "Token inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext devolve as claims do token, ou nil em acesso anônimo.
func ClaimsFromContext(ctx context.Context) *domain.Claims {
	claims, _ := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims
}
