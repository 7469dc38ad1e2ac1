package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/internal/application/inventory"
	"github.com/jhoicas/mini-estoque/internal/application/usecase"
	"github.com/jhoicas/mini-estoque/internal/domain/entity"
	"github.com/jhoicas/mini-estoque/pkg/logger"
	"github.com/jhoicas/mini-estoque/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP de movimientos (protegido).
type InventoryHandler struct {
	uc       *inventory.RegisterMovementUseCase
	products *usecase.ProductUseCase
	validate validator.Validator
	log      *logger.Logger
}

// NewInventoryHandler construye el handler. products resuelve product_name a ID.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, products *usecase.ProductUseCase, v validator.Validator, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, products: products, validate: v, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar entrada o salida de stock
// @Description  kind: in/out (también entrada/saida). Se identifica el producto por product_id o, en su defecto, por product_name.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id o product_name, kind, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	kind, err := entity.ParseMovementKind(in.Kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: []validator.FieldError{{Field: "kind", Message: "debe ser in u out"}},
		})
	}

	productID := in.ProductID
	if productID == 0 {
		productID, err = h.products.ResolveByName(c.UserContext(), in.ProductName)
		if err != nil {
			return writeError(c, h.log, err)
		}
	}

	out, err := h.uc.ApplyMovement(c.UserContext(), inventory.MovementInput{
		ProductID: productID,
		Kind:      kind,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Todos los movimientos con el nombre del producto, más recientes primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementHistoryResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovementHistory(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListProductMovements godoc
// @Summary      Historial de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListProductMovements(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ListProductHistory(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
