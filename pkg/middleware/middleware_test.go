package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{}
	claims.Subject = "user-1"

	tests := []struct {
		name       string
		header     string
		setup      func(auth *mocks.MockAuthenticator)
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "Sem Authorization - segue anônimo",
			setup:      func(auth *mocks.MockAuthenticator) {},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "Esquema diferente de Bearer - 401",
			header:     "Basic abc",
			setup:      func(auth *mocks.MockAuthenticator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token expirado - 401",
			header: "Bearer velho",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("velho").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token válido - claims no contexto",
			header: "Bearer bom",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("bom").Return(claims, nil)
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			called := false
			h := AuthMiddleware(auth)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/v1/kpis/summary", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestWorkspaceScoped(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(auth *mocks.MockAuthenticator)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Sem cabeçalho - 400",
			setup:      func(auth *mocks.MockAuthenticator) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "Workspace inexistente - 404",
			header: "ws-x",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ResolveWorkspace(gomock.Any(), "ws-x", nil).
					Return(nil, nil, fmt.Errorf("%w: ws-x", domain.ErrWorkspaceNotFound))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrWorkspaceNotFound,
		},
		{
			name:   "Não membro - 403",
			header: "ws-x",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ResolveWorkspace(gomock.Any(), "ws-x", nil).
					Return(nil, nil, domain.ErrNotWorkspaceMember)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrNotWorkspaceMember,
		},
		{
			name:   "Falha no banco - 500",
			header: "ws-x",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ResolveWorkspace(gomock.Any(), "ws-x", nil).
					Return(nil, nil, fmt.Errorf("conexão recusada"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrDatabaseOperation,
		},
		{
			name:   "Workspace válido - segue com id no contexto",
			header: " ws-x ",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ResolveWorkspace(gomock.Any(), "ws-x", nil).
					Return(&domain.Workspace{ID: "ws-x"}, nil, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			var gotWorkspace string
			h := WorkspaceScoped(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotWorkspace = WorkspaceID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/risks/ops", nil)
			if tt.header != "" {
				req.Header.Set(WorkspaceHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
				return
			}
			assert.Equal(t, "ws-x", gotWorkspace)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		member     *domain.WorkspaceMember
		wantStatus int
	}{
		{name: "Anônimo - 401", member: nil, wantStatus: http.StatusUnauthorized},
		{name: "Viewer - 403", member: &domain.WorkspaceMember{UserID: "u", Role: domain.RoleViewer}, wantStatus: http.StatusForbidden},
		{name: "Admin - permitido", member: &domain.WorkspaceMember{UserID: "u", Role: domain.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "Owner - permitido", member: &domain.WorkspaceMember{UserID: "u", Role: domain.RoleOwner}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := AdminOrOwner()(okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/v1/plans", nil)
			if tt.member != nil {
				req = req.WithContext(contextWithMember(req, tt.member))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}

func TestCors(t *testing.T) {
	called := false
	h := Cors([]string{"http://localhost:3000"})(okHandler(&called))

	req := httptest.NewRequest(http.MethodOptions, "/v1/plans", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), WorkspaceHeader)

	req = httptest.NewRequest(http.MethodGet, "/v1/plans", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func contextWithMember(r *http.Request, member *domain.WorkspaceMember) context.Context {
	return context.WithValue(r.Context(), ContextKeyMember, member)
}
