package authenticating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_ValidateToken(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		now     time.Time
		wantErr error
		wantSub string
	}{
		{
			name: "Token válido - claims devolvidas",
			token: func(t *testing.T) string {
				s := newTokenService("segredo", issuedAt)
				token, err := s.IssueToken("user-1", "ana@example.com", time.Hour)
				require.NoError(t, err)
				return token
			},
			now:     issuedAt.Add(time.Minute),
			wantSub: "user-1",
		},
		{
			name: "Token expirado - erro de expiração",
			token: func(t *testing.T) string {
				s := newTokenService("segredo", issuedAt)
				token, err := s.IssueToken("user-1", "", time.Hour)
				require.NoError(t, err)
				return token
			},
			now:     issuedAt.Add(2 * time.Hour),
			wantErr: ErrExpiredToken,
		},
		{
			name: "Assinado com outro segredo - token inválido",
			token: func(t *testing.T) string {
				s := newTokenService("outro", issuedAt)
				token, err := s.IssueToken("user-1", "", time.Hour)
				require.NoError(t, err)
				return token
			},
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Token vazio - token ausente",
			token:   func(t *testing.T) string { return "" },
			now:     issuedAt,
			wantErr: ErrMissingToken,
		},
		{
			name:    "Token malformado - token inválido",
			token:   func(t *testing.T) string { return "abc.def" },
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token(t)
			s := newTokenService("segredo", tt.now)

			claims, err := s.ValidateToken(token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsAuthorizationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, claims.Subject)
		})
	}
}

func TestService_IssueToken_SemSegredo(t *testing.T) {
	s := newTokenService("", time.Now())
	_, err := s.IssueToken("user-1", "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestService_ResolveWorkspace(t *testing.T) {
	claims := &domain.Claims{}
	claims.Subject = "user-1"

	tests := []struct {
		name       string
		claims     *domain.Claims
		setup      func(repo *mocks.MockWorkspaceRepository)
		wantErr    error
		wantMember bool
	}{
		{
			name: "Workspace inexistente - não encontrado",
			setup: func(repo *mocks.MockWorkspaceRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "ws-x").Return(nil, nil)
			},
			wantErr: domain.ErrWorkspaceNotFound,
		},
		{
			name: "Sem token - acesso anônimo ao workspace",
			setup: func(repo *mocks.MockWorkspaceRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "ws-x").Return(&domain.Workspace{ID: "ws-x"}, nil)
			},
		},
		{
			name:   "Usuário não é membro - acesso negado",
			claims: claims,
			setup: func(repo *mocks.MockWorkspaceRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "ws-x").Return(&domain.Workspace{ID: "ws-x"}, nil)
				repo.EXPECT().GetMembership(gomock.Any(), "ws-x", "user-1").Return(nil, nil)
			},
			wantErr: domain.ErrNotWorkspaceMember,
		},
		{
			name:   "Membro - vínculo devolvido",
			claims: claims,
			setup: func(repo *mocks.MockWorkspaceRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "ws-x").Return(&domain.Workspace{ID: "ws-x"}, nil)
				repo.EXPECT().GetMembership(gomock.Any(), "ws-x", "user-1").
					Return(&domain.WorkspaceMember{WorkspaceID: "ws-x", UserID: "user-1", Role: domain.RoleAdmin}, nil)
			},
			wantMember: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockWorkspaceRepository(ctrl)
			tt.setup(repo)

			s := NewService(repo, config.Auth{Secret: "segredo"})
			ws, member, err := s.ResolveWorkspace(context.Background(), "ws-x", tt.claims)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ws-x", ws.ID)
			assert.Equal(t, tt.wantMember, member != nil)
		})
	}
}

func newTokenService(secret string, now time.Time) *Service {
	s := NewService(nil, config.Auth{Secret: secret})
	s.now = func() time.Time { return now }
	return s
}
