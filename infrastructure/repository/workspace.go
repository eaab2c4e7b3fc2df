package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

type WorkspaceRepository interface {
	List(ctx context.Context) ([]domain.Workspace, error)
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	GetMembership(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error)
}

type workspaceRepository struct {
	conn postgres.Queryer
}

func NewWorkspaceRepository(conn postgres.Queryer) WorkspaceRepository {
	return &workspaceRepository{
		conn: conn,
	}
}

func (r *workspaceRepository) List(ctx context.Context) ([]domain.Workspace, error) {
	query, args, err := squirrel.
		Select("id", "name", "created_at").
		From("workspaces").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	workspaces := make([]domain.Workspace, 0)
	if err := r.conn.SelectContext(ctx, &workspaces, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return workspaces, nil
}

func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query, args, err := squirrel.
		Select("id", "name", "created_at").
		From("workspaces").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var ws domain.Workspace
	if err := r.conn.GetContext(ctx, &ws, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return &ws, nil
}

func (r *workspaceRepository) GetMembership(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	query, args, err := squirrel.
		Select("workspace_id", "user_id", "role").
		From("workspace_members").
		Where(squirrel.Eq{"workspace_id": workspaceID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var member domain.WorkspaceMember
	if err := r.conn.GetContext(ctx, &member, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return &member, nil
}
