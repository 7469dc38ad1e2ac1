package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ExpirationDateLayout formato de la fecha de validez (se guarda como texto).
const ExpirationDateLayout = "2006-01-02"

// MaxQuantity tope de stock, mínimo y cantidad de un movimiento (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// Product representa un producto del catálogo.
// StockQuantity solo cambia a través de movimientos (entrada/salida).
type Product struct {
	ID             int64
	Name           string
	Category       string
	UnitPrice      decimal.Decimal
	StockQuantity  int
	MinimumStock   int
	ExpirationDate string
	CreatedAt      time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo (solo visualización).
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinimumStock
}

// CanRemove indica si una salida de qty deja el stock no negativo.
func (p Product) CanRemove(qty int) bool {
	return qty <= p.StockQuantity
}

// CanAdd indica si una entrada de qty cabe sin pasar de MaxQuantity.
func (p Product) CanAdd(qty int) bool {
	return qty <= MaxQuantity-p.StockQuantity
}
