package repository

import (
	"context"

	"github.com/jhoicas/mini-estoque/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste el producto y rellena ID y CreatedAt asignados por la BD.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Usar dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// AdjustStock suma delta al stock solo si el resultado queda >= 0.
	// Devuelve ErrInsufficientStock si la condición no se cumple y ErrProductNotFound si no existe.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}
