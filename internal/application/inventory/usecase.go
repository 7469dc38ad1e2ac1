package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/internal/domain"
	"github.com/jhoicas/mini-estoque/internal/domain/entity"
	"github.com/jhoicas/mini-estoque/internal/domain/repository"
	"github.com/jhoicas/mini-estoque/pkg/logger"
)

// RegisterMovementUseCase registra entradas y salidas de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. movRepo se usa para lecturas fuera de tx.
func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository, log *logger.Logger) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		log:      log.Component("inventory"),
	}
}

// MovementInput entrada del caso de uso.
type MovementInput struct {
	ProductID int64
	Kind      entity.MovementKind
	Quantity  int
}

// ApplyMovement bloquea el producto, valida la salida contra el stock, ajusta el stock
// y anexa el movimiento. Todo o nada: si algo falla no queda ningún cambio.
func (uc *RegisterMovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	if err := in.Kind.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.Quantity > entity.MaxQuantity || in.ProductID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var (
		mov        *entity.Movement
		stockAfter int
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if in.Kind == entity.MovementOut && !product.CanRemove(in.Quantity) {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				Available: product.StockQuantity,
				Requested: in.Quantity,
			}
		}
		if in.Kind == entity.MovementIn && !product.CanAdd(in.Quantity) {
			return fmt.Errorf("%w: el stock superaría %d", domain.ErrInvalidInput, entity.MaxQuantity)
		}

		delta := in.Kind.Apply(0, in.Quantity)
		stockAfter, err = productRepo.AdjustStock(ctx, product.ID, delta)
		if err != nil {
			return err
		}

		mov = &entity.Movement{
			ProductID:     product.ID,
			TransactionID: uuid.New().String(),
			Kind:          in.Kind,
			Quantity:      in.Quantity,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Warn().Int64("product_id", in.ProductID).Int("quantity", in.Quantity).Err(err).Msg("salida rechazada")
		}
		return nil, err
	}

	uc.log.Info().
		Int64("product_id", mov.ProductID).
		Str("kind", mov.Kind.String()).
		Int("quantity", mov.Quantity).
		Int("stock_after", stockAfter).
		Str("transaction_id", mov.TransactionID).
		Msg("movimiento registrado")

	return &dto.MovementResponse{
		ID:            mov.ID,
		ProductID:     mov.ProductID,
		TransactionID: mov.TransactionID,
		Kind:          mov.Kind.String(),
		Quantity:      mov.Quantity,
		StockAfter:    stockAfter,
		CreatedAt:     mov.CreatedAt,
	}, nil
}

// ListMovementHistory todos los movimientos con el nombre del producto, más recientes primero.
func (uc *RegisterMovementUseCase) ListMovementHistory(ctx context.Context) (*dto.MovementHistoryResponse, error) {
	list, err := uc.movRepo.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return toHistoryResponse(list), nil
}

// ListProductHistory historial de un solo producto.
func (uc *RegisterMovementUseCase) ListProductHistory(ctx context.Context, productID int64) (*dto.MovementHistoryResponse, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toHistoryResponse(list), nil
}

func toHistoryResponse(list []*entity.MovementHistoryEntry) *dto.MovementHistoryResponse {
	items := make([]dto.MovementHistoryItem, 0, len(list))
	for _, e := range list {
		items = append(items, dto.MovementHistoryItem{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Kind:        e.Kind.String(),
			Quantity:    e.Quantity,
			CreatedAt:   e.CreatedAt,
		})
	}
	return &dto.MovementHistoryResponse{Items: items, Total: len(items)}
}
