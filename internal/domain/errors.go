package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrAmbiguousProduct  = errors.New("más de un producto con ese nombre")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("cantidad mayor que el stock disponible")
)

// InsufficientStockError detalle de una salida rechazada. errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s (disponible: %d, solicitado: %d)", ErrInsufficientStock.Error(), e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
