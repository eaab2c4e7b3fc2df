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

type ProductRepository interface {
	GetBySKU(ctx context.Context, workspaceID, sku string) (*domain.Product, error)
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Product, error)
}

type productRepository struct {
	conn postgres.Queryer
}

func NewProductRepository(conn postgres.Queryer) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetBySKU(ctx context.Context, workspaceID, sku string) (*domain.Product, error) {
	return r.get(ctx, squirrel.Eq{"workspace_id": workspaceID, "sku": sku})
}

func (r *productRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Product, error) {
	return r.get(ctx, squirrel.Eq{"workspace_id": workspaceID, "id": id})
}

func (r *productRepository) get(ctx context.Context, where squirrel.Eq) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "workspace_id", "sku", "name").
		From("products").
		Where(where).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var product domain.Product
	if err := r.conn.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return &product, nil
}
