package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mini-estoque/internal/application/ports"
)

// ReportUseCase exporta el listado de stock a planilla o PDF.
type ReportUseCase struct {
	products    *ProductUseCase
	pdf         ports.StockPDFGenerator
	spreadsheet ports.StockSpreadsheetGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando los generadores.
func NewReportUseCase(products *ProductUseCase, pdf ports.StockPDFGenerator, spreadsheet ports.StockSpreadsheetGenerator) *ReportUseCase {
	return &ReportUseCase{products: products, pdf: pdf, spreadsheet: spreadsheet, now: time.Now}
}

// ExportSpreadsheet devuelve el xlsx del listado y el nombre de archivo sugerido.
func (uc *ReportUseCase) ExportSpreadsheet(ctx context.Context) ([]byte, string, error) {
	report, err := uc.build(ctx, "Estoque")
	if err != nil {
		return nil, "", err
	}
	data, err := uc.spreadsheet.GenerateStockSpreadsheet(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar planilla: %w", err)
	}
	return data, "estoque.xlsx", nil
}

// StockPDF devuelve el informe de stock en PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) StockPDF(ctx context.Context) ([]byte, string, error) {
	report, err := uc.build(ctx, "Relatório de estoque")
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateStockPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return data, "estoque_" + report.GeneratedAt.Format("20060102") + ".pdf", nil
}

func (uc *ReportUseCase) build(ctx context.Context, title string) (*ports.StockReport, error) {
	list, err := uc.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.StockReport{
		Title:         title,
		GeneratedAt:   uc.now(),
		Products:      list.Items,
		LowStockCount: list.LowStockCount,
	}, nil
}
