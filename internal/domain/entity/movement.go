package entity

import (
	"fmt"
	"strings"
	"time"
)

// MovementKind tipo de movimiento. Solo existen entrada y salida.
type MovementKind string

const (
	MovementIn  MovementKind = "in"  // entrada
	MovementOut MovementKind = "out" // salida
)

// ParseMovementKind acepta "in"/"out" y las etiquetas "entrada"/"saida"/"salida".
func ParseMovementKind(s string) (MovementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "entrada":
		return MovementIn, nil
	case "out", "saida", "salida":
		return MovementOut, nil
	}
	return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
}

func (k MovementKind) String() string { return string(k) }

// Validate se usa desde el validador de structs (tag "enum").
func (k MovementKind) Validate() error {
	if k != MovementIn && k != MovementOut {
		return fmt.Errorf("tipo de movimiento inválido: %q", string(k))
	}
	return nil
}

// Apply devuelve el stock resultante de aplicar qty con este tipo.
func (k MovementKind) Apply(stock, qty int) int {
	if k == MovementOut {
		return stock - qty
	}
	return stock + qty
}

// Movement registro inmutable del libro de movimientos.
type Movement struct {
	ID            int64
	ProductID     int64
	TransactionID string
	Kind          MovementKind
	Quantity      int
	CreatedAt     time.Time
}

// MovementHistoryEntry movimiento con el nombre del producto (para el historial).
type MovementHistoryEntry struct {
	Movement
	ProductName string
}
