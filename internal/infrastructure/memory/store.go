// Package memory implementa los puertos de persistencia en memoria.
// Se usa en los tests de casos de uso y de HTTP.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/mini-estoque/internal/application/inventory"
	"github.com/jhoicas/mini-estoque/internal/domain"
	"github.com/jhoicas/mini-estoque/internal/domain/entity"
	"github.com/jhoicas/mini-estoque/internal/domain/repository"
)

var (
	_ inventory.TxRunner            = (*Store)(nil)
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.MovementRepository = (*movementRepo)(nil)
)

// Store guarda productos y movimientos. Run serializa las transacciones y
// restaura el estado previo si fn devuelve error.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products  []entity.Product
	movements []entity.Movement
	nextProd  int64
	nextMov   int64

	failMovement error

	// Now reloj usado para created_at; time.Now por defecto.
	Now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{Now: time.Now}
}

// Products repositorio de productos fuera de tx.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements repositorio de movimientos fuera de tx.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// FailNextMovement hace que el próximo Create de movimiento devuelva err.
func (s *Store) FailNextMovement(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMovement = err
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	products := append([]entity.Product(nil), s.products...)
	movements := append([]entity.Movement(nil), s.movements...)
	nextProd, nextMov := s.nextProd, s.nextMov
	s.mu.Unlock()

	if err := fn(s.Products(), s.Movements()); err != nil {
		s.mu.Lock()
		s.products, s.movements = products, movements
		s.nextProd, s.nextMov = nextProd, nextMov
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) findProduct(id int64) int {
	i := sort.Search(len(s.products), func(i int) bool { return s.products[i].ID >= id })
	if i < len(s.products) && s.products[i].ID == id {
		return i
	}
	return -1
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if p.StockQuantity < 0 || p.MinimumStock < 0 || p.StockQuantity > entity.MaxQuantity || p.MinimumStock > entity.MaxQuantity {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProd++
	p.ID = r.s.nextProd
	p.CreatedAt = r.s.Now()
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.findProduct(id)
	if i < 0 {
		return nil, domain.ErrProductNotFound
	}
	p := r.s.products[i]
	return &p, nil
}

// GetForUpdate no necesita bloqueo propio: Run ya serializa las transacciones.
func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) AdjustStock(_ context.Context, id int64, delta int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.findProduct(id)
	if i < 0 {
		return 0, domain.ErrProductNotFound
	}
	next := r.s.products[i].StockQuantity + delta
	if next < 0 {
		return 0, domain.ErrInsufficientStock
	}
	if next > entity.MaxQuantity {
		return 0, domain.ErrInvalidInput
	}
	r.s.products[i].StockQuantity = next
	return next, nil
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(entity.Product) bool { return true }), nil
}

func (r *productRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return r.filter(entity.Product.IsLowStock), nil
}

func (r *productRepo) filter(keep func(entity.Product) bool) []*entity.Product {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	return out
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failMovement; err != nil {
		r.s.failMovement = nil
		return err
	}
	if r.s.findProduct(m.ProductID) < 0 {
		return domain.ErrProductNotFound
	}
	if m.Quantity <= 0 || m.Kind.Validate() != nil {
		return domain.ErrInvalidInput
	}
	r.s.nextMov++
	m.ID = r.s.nextMov
	m.CreatedAt = r.s.Now()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListHistory(_ context.Context) ([]*entity.MovementHistoryEntry, error) {
	return r.history(0), nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.MovementHistoryEntry, error) {
	return r.history(productID), nil
}

// history productID == 0 devuelve todos. Orden: created_at DESC, id DESC.
func (r *movementRepo) history(productID int64) []*entity.MovementHistoryEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MovementHistoryEntry, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		if productID != 0 && m.ProductID != productID {
			continue
		}
		e := &entity.MovementHistoryEntry{Movement: m}
		if i := r.s.findProduct(m.ProductID); i >= 0 {
			e.ProductName = r.s.products[i].Name
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
