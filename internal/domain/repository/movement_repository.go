package repository

import (
	"context"

	"github.com/jhoicas/mini-estoque/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos (solo anexar).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListHistory(ctx context.Context) ([]*entity.MovementHistoryEntry, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.MovementHistoryEntry, error)
}
