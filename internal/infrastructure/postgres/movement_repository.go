package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mini-estoque/internal/domain"
	"github.com/jhoicas/mini-estoque/internal/domain/entity"
	"github.com/jhoicas/mini-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create anexa un movimiento; la BD asigna id y created_at.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, transaction_id, kind, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, m.ProductID, m.TransactionID, string(m.Kind), m.Quantity).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

const historySelect = `
	SELECT m.id, m.product_id, m.transaction_id, m.kind, m.quantity, m.created_at, p.name
	FROM movements m
	JOIN products p ON p.id = m.product_id`

// ListHistory todos los movimientos con el nombre del producto, más recientes primero.
func (r *MovementRepo) ListHistory(ctx context.Context) ([]*entity.MovementHistoryEntry, error) {
	rows, err := r.q.Query(ctx, historySelect+` ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list movement history: %w", err)
	}
	return scanHistory(rows)
}

// ListByProduct historial de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.MovementHistoryEntry, error) {
	rows, err := r.q.Query(ctx, historySelect+` WHERE m.product_id = $1 ORDER BY m.created_at DESC, m.id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return scanHistory(rows)
}

func scanHistory(rows pgx.Rows) ([]*entity.MovementHistoryEntry, error) {
	defer rows.Close()
	var list []*entity.MovementHistoryEntry
	for rows.Next() {
		var e entity.MovementHistoryEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.TransactionID, &kind, &e.Quantity, &e.CreatedAt, &e.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		e.Kind = entity.MovementKind(kind)
		list = append(list, &e)
	}
	return list, rows.Err()
}
