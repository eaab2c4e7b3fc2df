package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

// LedgerRepository lê as tabelas fees e refunds, que compartilham o mesmo formato.
type LedgerRepository interface {
	// SumCreatedWithin soma os lançamentos do workspace pelo próprio createdAt.
	SumCreatedWithin(ctx context.Context, kind domain.LedgerKind, workspaceID string, rng domain.DateRange) (decimal.Decimal, error)
	ListCreatedWithin(ctx context.Context, kind domain.LedgerKind, workspaceID string, rng domain.DateRange) ([]domain.LedgerEntry, error)
	// ListLinkedToOrders devolve os lançamentos criados no intervalo e vinculados aos pedidos.
	ListLinkedToOrders(ctx context.Context, kind domain.LedgerKind, workspaceID string, rng domain.DateRange, orderIDs []string) ([]domain.LedgerEntry, error)
}

type ledgerRepository struct {
	conn postgres.Queryer
}

func NewLedgerRepository(conn postgres.Queryer) LedgerRepository {
	return &ledgerRepository{
		conn: conn,
	}
}

func ledgerTable(kind domain.LedgerKind) (string, error) {
	switch kind {
	case domain.LedgerFees, domain.LedgerRefunds:
		return string(kind), nil
	}
	return "", fmt.Errorf("tipo de lançamento desconhecido: %s", kind)
}

func createdWithin(rng domain.DateRange) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{"created_at": rng.From},
		squirrel.Lt{"created_at": rng.ToExclusive},
	}
}

func (r *ledgerRepository) SumCreatedWithin(ctx context.Context, kind domain.LedgerKind, workspaceID string, rng domain.DateRange) (decimal.Decimal, error) {
	table, err := ledgerTable(kind)
	if err != nil {
		return decimal.Zero, err
	}

	query, args, err := squirrel.
		Select("COALESCE(SUM(amount), 0)").
		From(table).
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		Where(createdWithin(rng)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total decimal.Decimal
	if err := r.conn.GetContext(ctx, &total, query, args...); err != nil {
		return decimal.Zero, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return total, nil
}

func (r *ledgerRepository) ListCreatedWithin(ctx context.Context, kind domain.LedgerKind, workspaceID string, rng domain.DateRange) ([]domain.LedgerEntry, error) {
	return r.list(ctx, kind, squirrel.And{
		squirrel.Eq{"workspace_id": workspaceID},
		createdWithin(rng),
	})
}

func (r *ledgerRepository) ListLinkedToOrders(ctx context.Context, kind domain.LedgerKind, workspaceID string, rng domain.DateRange, orderIDs []string) ([]domain.LedgerEntry, error) {
	if len(orderIDs) == 0 {
		return []domain.LedgerEntry{}, nil
	}

	return r.list(ctx, kind, squirrel.And{
		squirrel.Eq{"workspace_id": workspaceID, "order_id": orderIDs},
		createdWithin(rng),
	})
}

func (r *ledgerRepository) list(ctx context.Context, kind domain.LedgerKind, where squirrel.Sqlizer) ([]domain.LedgerEntry, error) {
	table, err := ledgerTable(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("id", "workspace_id", "order_id", "amount", "currency", "created_at").
		From(table).
		Where(where).
		OrderBy("created_at DESC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entries := make([]domain.LedgerEntry, 0)
	if err := r.conn.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return entries, nil
}
