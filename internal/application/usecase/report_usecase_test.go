package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-estoque/internal/application/ports"
	"github.com/jhoicas/mini-estoque/internal/application/usecase"
)

type captureGenerator struct {
	got *ports.StockReport
	err error
}

func (g *captureGenerator) GenerateStockPDF(_ context.Context, r *ports.StockReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF"), g.err
}

func (g *captureGenerator) GenerateStockSpreadsheet(_ context.Context, r *ports.StockReport) ([]byte, error) {
	g.got = r
	return []byte("PK"), g.err
}

func TestReportUseCase_ExportSpreadsheet(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newCatalog()
	_, err := catalog.CreateProduct(ctx, productReq("Arroz", 10, 3))
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, productReq("Leite", 1, 3))
	require.NoError(t, err)

	gen := &captureGenerator{}
	uc := usecase.NewReportUseCase(catalog, gen, gen)

	data, filename, err := uc.ExportSpreadsheet(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
	assert.Equal(t, "estoque.xlsx", filename)

	require.NotNil(t, gen.got)
	assert.Equal(t, "Estoque", gen.got.Title)
	require.Len(t, gen.got.Products, 2)
	assert.Equal(t, "Arroz", gen.got.Products[0].Name)
	assert.Equal(t, 1, gen.got.LowStockCount)
}

func TestReportUseCase_StockPDF_ErrorDelGenerador(t *testing.T) {
	catalog, _ := newCatalog()
	gen := &captureGenerator{err: errors.New("fuente no disponible")}
	uc := usecase.NewReportUseCase(catalog, gen, gen)

	_, _, err := uc.StockPDF(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuente no disponible")
}
