package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para registrar un producto.
// StockQuantity es puntero para distinguir "0" de "no informado".
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Category       string          `json:"category" validate:"max=100"`
	UnitPrice      decimal.Decimal `json:"unit_price" validate:"gte=0.01"`
	StockQuantity  *int            `json:"stock_quantity" validate:"required,gte=0,lte=2147483647"`
	MinimumStock   int             `json:"minimum_stock" validate:"gte=0,lte=2147483647"`
	ExpirationDate string          `json:"expiration_date" validate:"omitempty,date"`
}

// ProductResponse salida de un producto. LowStock: stock_quantity <= minimum_stock.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	StockQuantity  int             `json:"stock_quantity"`
	MinimumStock   int             `json:"minimum_stock"`
	ExpirationDate string          `json:"expiration_date"`
	LowStock       bool            `json:"low_stock"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ProductListResponse listado completo de productos.
type ProductListResponse struct {
	Items         []ProductResponse `json:"items"`
	Total         int               `json:"total"`
	LowStockCount int               `json:"low_stock_count"`
}
