package authenticating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
)

// Authenticator valida tokens de acesso e resolve o acesso ao workspace.
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	IssueToken(userID, email string, ttl time.Duration) (string, error)
	ResolveWorkspace(ctx context.Context, workspaceID string, claims *domain.Claims) (*domain.Workspace, *domain.WorkspaceMember, error)
}

type Service struct {
	workspaceRepo repository.WorkspaceRepository
	secret        []byte
	now           func() time.Time
}

func NewService(workspaceRepo repository.WorkspaceRepository, cfg config.Auth) *Service {
	return &Service{
		workspaceRepo: workspaceRepo,
		secret:        []byte(cfg.Secret),
		now:           time.Now,
	}
}

// IssueToken assina um token HS256 com o usuário em sub. Usado em ambiente local.
func (s *Service) IssueToken(userID, email string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := s.now()
	claims := domain.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrInvalidToken, "")
	}
	if len(s.secret) == 0 {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, ErrMissingSecret.Error())
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "sub ausente")
	}

	return claims, nil
}

// ResolveWorkspace confirma que o workspace existe. Com claims, exige que
// o usuário do token seja membro e devolve o vínculo.
func (s *Service) ResolveWorkspace(ctx context.Context, workspaceID string, claims *domain.Claims) (*domain.Workspace, *domain.WorkspaceMember, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao buscar workspace: %w", err)
	}
	if ws == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrWorkspaceNotFound, workspaceID)
	}

	if claims == nil {
		return ws, nil, nil
	}

	member, err := s.workspaceRepo.GetMembership(ctx, workspaceID, claims.Subject)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao buscar vínculo: %w", err)
	}
	if member == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNotWorkspaceMember, claims.Subject)
	}

	return ws, member, nil
}
