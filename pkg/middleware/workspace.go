package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
)

// WorkspaceHeader é o cabeçalho que identifica o tenant da requisição.
const WorkspaceHeader = "X-Workspace-Id"

// WorkspaceScoped exige o cabeçalho de workspace e confirma o acesso a ele.
func WorkspaceScoped(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			workspaceID := strings.TrimSpace(r.Header.Get(WorkspaceHeader))
			if workspaceID == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cabeçalho X-Workspace-Id obrigatório", nil)
				return
			}

			ws, member, err := authService.ResolveWorkspace(r.Context(), workspaceID, ClaimsFromContext(r.Context()))
			switch {
			case errors.Is(err, domain.ErrWorkspaceNotFound):
				apiErrors.WriteError(w, apiErrors.ErrWorkspaceNotFound, "Workspace não encontrado", nil)
				return
			case errors.Is(err, domain.ErrNotWorkspaceMember):
				apiErrors.WriteError(w, apiErrors.ErrNotWorkspaceMember, "Usuário não pertence ao workspace", nil)
				return
			case err != nil:
				log.ForContext(r.Context()).WithError(err).Error("Erro ao resolver workspace")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao resolver workspace", nil)
				return
			}

			ctx := log.WithWorkspaceID(r.Context(), ws.ID)
			if member != nil {
				ctx = context.WithValue(ctx, ContextKeyMember, member)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WorkspaceID devolve o workspace resolvido por WorkspaceScoped.
func WorkspaceID(ctx context.Context) string {
	return log.GetWorkspaceID(ctx)
}

// MemberFromContext devolve o vínculo do usuário, ou nil em acesso anônimo.
func MemberFromContext(ctx context.Context) *domain.WorkspaceMember {
	member, _ := ctx.Value(ContextKeyMember).(*domain.WorkspaceMember)
	return member
}
