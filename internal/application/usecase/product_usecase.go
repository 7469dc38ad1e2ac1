package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/internal/domain"
	"github.com/jhoicas/mini-estoque/internal/domain/entity"
	"github.com/jhoicas/mini-estoque/internal/domain/repository"
)

// ProductUseCase catálogo de productos. El stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj usado para la fecha de validez por defecto.
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// CreateProduct registra un producto. Sin fecha de validez se usa la fecha de hoy.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.StockQuantity == nil || !in.UnitPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !validQuantity(*in.StockQuantity) || !validQuantity(in.MinimumStock) {
		return nil, domain.ErrInvalidInput
	}
	expiration := strings.TrimSpace(in.ExpirationDate)
	if expiration == "" {
		expiration = uc.now().Format(entity.ExpirationDateLayout)
	} else if _, err := time.Parse(entity.ExpirationDateLayout, expiration); err != nil {
		return nil, domain.ErrInvalidInput
	}

	product := &entity.Product{
		Name:           name,
		Category:       strings.TrimSpace(in.Category),
		UnitPrice:      in.UnitPrice.Round(2),
		StockQuantity:  *in.StockQuantity,
		MinimumStock:   in.MinimumStock,
		ExpirationDate: expiration,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID. ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts todos los productos en orden de registro.
func (uc *ProductUseCase) ListProducts(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// ListLowStock productos con stock en o por debajo del mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// ResolveByName devuelve el ID del único producto con ese nombre.
// Compara sin espacios en los extremos y en forma NFC; distingue mayúsculas.
func (uc *ProductUseCase) ResolveByName(ctx context.Context, name string) (int64, error) {
	want := normalizeName(name)
	if want == "" {
		return 0, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	var found []int64
	for _, p := range list {
		if normalizeName(p.Name) == want {
			found = append(found, p.ID)
		}
	}
	switch len(found) {
	case 0:
		return 0, domain.ErrProductNotFound
	case 1:
		return found[0], nil
	default:
		return 0, domain.ErrAmbiguousProduct
	}
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func toProductList(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	low := 0
	for _, p := range list {
		r := toProductResponse(p)
		if r.LowStock {
			low++
		}
		items = append(items, *r)
	}
	return &dto.ProductListResponse{Items: items, Total: len(items), LowStockCount: low}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		UnitPrice:      p.UnitPrice,
		StockQuantity:  p.StockQuantity,
		MinimumStock:   p.MinimumStock,
		ExpirationDate: p.ExpirationDate,
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt,
	}
}

func validQuantity(n int) bool {
	return n >= 0 && n <= entity.MaxQuantity
}
