package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
)

// RequireRole restringe a rota aos papéis informados no workspace.
// Deve rodar depois de WorkspaceScoped.
func RequireRole(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member := MemberFromContext(r.Context())
			if member == nil {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, member.Role) {
				logrus.Warningf("Acesso negado para usuário ID=%s, Role=%s", member.UserID, member.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOrOwner permite acesso a administradores e donos do workspace
func AdminOrOwner() func(http.Handler) http.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleOwner)
}
