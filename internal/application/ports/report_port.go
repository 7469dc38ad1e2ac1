package ports

import (
	"context"
	"time"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
)

// StockReport datos comunes a la planilla y al informe PDF de stock.
type StockReport struct {
	Title         string
	GeneratedAt   time.Time
	Products      []dto.ProductResponse
	LowStockCount int
}

// StockPDFGenerator puerto de salida para el informe de stock en PDF.
type StockPDFGenerator interface {
	GenerateStockPDF(ctx context.Context, report *StockReport) ([]byte, error)
}

// StockSpreadsheetGenerator puerto de salida para la exportación a planilla (xlsx).
// La hoja se llama "Estoque" y tiene una fila por producto, en el orden del listado.
type StockSpreadsheetGenerator interface {
	GenerateStockSpreadsheet(ctx context.Context, report *StockReport) ([]byte, error)
}
