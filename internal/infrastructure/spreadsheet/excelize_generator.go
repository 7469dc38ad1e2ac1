// Package spreadsheet exporta el listado de stock a xlsx con excelize.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mini-estoque/internal/application/ports"
)

var _ ports.StockSpreadsheetGenerator = (*ExcelizeGenerator)(nil)

// SheetName nombre de la única hoja del archivo.
const SheetName = "Estoque"

// Header cabecera de columnas, en el orden del listado.
var Header = []interface{}{"id", "nome", "categoria", "preco", "estoque", "estoque_minimo", "validade"}

// lowStockFill fondo de las filas con stock en o por debajo del mínimo.
const lowStockFill = "FFCCCC"

// ExcelizeGenerator implementa ports.StockSpreadsheetGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// GenerateStockSpreadsheet una fila por producto debajo de la cabecera.
func (g *ExcelizeGenerator) GenerateStockSpreadsheet(_ context.Context, report *ports.StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: estilo cabecera: %w", err)
	}
	lowStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{lowStockFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: estilo stock bajo: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return nil, fmt.Errorf("spreadsheet: cabecera: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Header))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("spreadsheet: cabecera: %w", err)
	}

	for i, p := range report.Products {
		rowNum := i + 2
		values := []interface{}{
			p.ID,
			p.Name,
			p.Category,
			p.UnitPrice.InexactFloat64(),
			p.StockQuantity,
			p.MinimumStock,
			p.ExpirationDate,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("spreadsheet: fila %d: %w", rowNum, err)
		}
		if p.LowStock {
			end, _ := excelize.CoordinatesToCellName(len(Header), rowNum)
			if err := f.SetCellStyle(SheetName, cell, end, lowStyle); err != nil {
				return nil, fmt.Errorf("spreadsheet: fila %d: %w", rowNum, err)
			}
		}
	}
	_ = f.SetColWidth(SheetName, "B", "C", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
