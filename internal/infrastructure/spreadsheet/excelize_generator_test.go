package spreadsheet_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/internal/application/ports"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/spreadsheet"
)

func TestGenerateStockSpreadsheet(t *testing.T) {
	report := &ports.StockReport{
		Title: "Estoque",
		Products: []dto.ProductResponse{
			{ID: 1, Name: "Arroz", Category: "Alimentos", UnitPrice: decimal.RequireFromString("22.90"), StockQuantity: 6, MinimumStock: 3, ExpirationDate: "2026-12-31"},
			{ID: 2, Name: "Leite", Category: "Laticínios", UnitPrice: decimal.RequireFromString("4.99"), StockQuantity: 2, MinimumStock: 5, ExpirationDate: "2026-06-01", LowStock: true},
		},
	}

	data, err := spreadsheet.NewExcelizeGenerator().GenerateStockSpreadsheet(context.Background(), report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{spreadsheet.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(spreadsheet.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "nome", "categoria", "preco", "estoque", "estoque_minimo", "validade"}, rows[0])
	assert.Equal(t, []string{"1", "Arroz", "Alimentos", "22.9", "6", "3", "2026-12-31"}, rows[1])
	assert.Equal(t, "Leite", rows[2][1])

	styleArroz, err := f.GetCellStyle(spreadsheet.SheetName, "A2")
	require.NoError(t, err)
	styleLeite, err := f.GetCellStyle(spreadsheet.SheetName, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, styleArroz, styleLeite, "la fila con stock bajo lleva otro estilo")
}

func TestGenerateStockSpreadsheet_SoloCabecera(t *testing.T) {
	data, err := spreadsheet.NewExcelizeGenerator().GenerateStockSpreadsheet(context.Background(), &ports.StockReport{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(spreadsheet.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
