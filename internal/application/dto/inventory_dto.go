package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// El producto se identifica por product_id; product_name solo se resuelve en el borde HTTP.
type RegisterMovementRequest struct {
	ProductID   int64  `json:"product_id" validate:"omitempty,gt=0"`
	ProductName string `json:"product_name" validate:"required_without=ProductID"`
	Kind        string `json:"kind" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=1,lte=2147483647"`
}

// MovementResponse movimiento registrado y stock resultante.
type MovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	TransactionID string    `json:"transaction_id"`
	Kind          string    `json:"kind"`
	Quantity      int       `json:"quantity"`
	StockAfter    int       `json:"stock_after"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementHistoryItem fila del historial (movimiento + nombre del producto).
type MovementHistoryItem struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementHistoryResponse historial, más recientes primero.
type MovementHistoryResponse struct {
	Items []MovementHistoryItem `json:"items"`
	Total int                   `json:"total"`
}
