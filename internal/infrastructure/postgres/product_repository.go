package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mini-estoque/internal/domain"
	"github.com/jhoicas/mini-estoque/internal/domain/entity"
	"github.com/jhoicas/mini-estoque/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, unit_price, stock_quantity, minimum_stock, expiration_date, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto; la BD asigna id y created_at.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.StockQuantity > entity.MaxQuantity || p.MinimumStock > entity.MaxQuantity {
		return domain.ErrInvalidInput
	}
	query := `
		INSERT INTO products (name, category, unit_price, stock_quantity, minimum_stock, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Category, p.UnitPrice, p.StockQuantity, p.MinimumStock, p.ExpirationDate,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. ErrProductNotFound si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// AdjustStock suma delta al stock en una sola sentencia condicional (el stock nunca queda negativo).
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	if delta > entity.MaxQuantity || delta < -entity.MaxQuantity {
		return 0, domain.ErrInvalidInput
	}
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock_quantity = stock_quantity + $2
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING stock_quantity`, id, delta).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if isOutOfRange(err) {
		return 0, domain.ErrInvalidInput
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return 0, domain.ErrProductNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// List devuelve todos los productos en orden de inserción.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// ListLowStock productos con stock en o por debajo del mínimo.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE stock_quantity <= minimum_stock ORDER BY id`)
}

func (r *ProductRepo) list(ctx context.Context, query string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.UnitPrice, &p.StockQuantity,
		&p.MinimumStock, &p.ExpirationDate, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
