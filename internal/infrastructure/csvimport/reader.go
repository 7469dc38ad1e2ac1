// Package csvimport lee productos desde un CSV separado por ';'
// con columnas name;category;price;stock;minimum;expiration.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
)

// Options opciones de lectura.
type Options struct {
	// Latin1 fuerza ISO-8859-1 (exportaciones de planillas antiguas).
	// Sin él la entrada se toma como UTF-8, salvo que no sea UTF-8 válido.
	Latin1 bool
}

// Row una fila válida del archivo con su número de línea.
type Row struct {
	Line    int
	Request dto.CreateProductRequest
}

// Read devuelve todas las filas. Una primera fila cuyo primer campo sea "name" o "nome" se toma como cabecera.
// minimum y expiration pueden ir vacíos; el precio acepta coma decimal.
func Read(r io.Reader, opts Options) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csvimport: %w", err)
	}
	r = bytes.NewReader(raw)
	if opts.Latin1 || !utf8.Valid(raw) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvimport: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first && isHeader(rec) {
			continue
		}
		if isBlank(rec) {
			continue
		}
		req, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csvimport: línea %d: %w", line, err)
		}
		rows = append(rows, Row{Line: line, Request: req})
	}
	return rows, nil
}

func parseRecord(rec []string) (dto.CreateProductRequest, error) {
	if len(rec) < 4 {
		return dto.CreateProductRequest{}, fmt.Errorf("se esperaban al menos 4 columnas, hay %d", len(rec))
	}
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(field(2), ",", "."))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("precio inválido %q", field(2))
	}
	stock, err := strconv.Atoi(field(3))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("stock inválido %q", field(3))
	}
	minimum := 0
	if s := field(4); s != "" {
		if minimum, err = strconv.Atoi(s); err != nil {
			return dto.CreateProductRequest{}, fmt.Errorf("mínimo inválido %q", s)
		}
	}

	return dto.CreateProductRequest{
		Name:           field(0),
		Category:       field(1),
		UnitPrice:      price,
		StockQuantity:  &stock,
		MinimumStock:   minimum,
		ExpirationDate: field(5),
	}, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")))
	return first == "name" || first == "nome"
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
