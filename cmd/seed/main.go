// seed carga productos desde un CSV (name;category;price;stock;minimum;expiration).
//
// Uso: go run ./cmd/seed [-latin1] ruta/productos.csv
// Sin -latin1 el archivo se lee como UTF-8; si no es UTF-8 válido se decodifica como ISO-8859-1.
// Crea el esquema si no existe. Cada fila pasa por el mismo caso de uso que POST /api/products.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/mini-estoque/internal/application/usecase"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/csvimport"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/mini-estoque/pkg/config"
	"github.com/jhoicas/mini-estoque/pkg/logger"
	"github.com/jhoicas/mini-estoque/pkg/validator"
)

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el archivo como ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-latin1] productos.csv")
		os.Exit(2)
	}

	cfg := config.LoadTools()
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := csvimport.Read(f, csvimport.Options{Latin1: *latin1})
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	v := validator.MustNew()
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))

	created, skipped := 0, 0
	for _, row := range rows {
		if err := v.Validate(&row.Request); err != nil {
			log.Warn().Int("linea", row.Line).Interface("detalles", validator.Details(err)).Msg("fila inválida, se omite")
			skipped++
			continue
		}
		p, err := productUC.CreateProduct(ctx, row.Request)
		if err != nil {
			log.Warn().Int("linea", row.Line).Err(err).Msg("no se pudo crear el producto")
			skipped++
			continue
		}
		log.Debug().Int64("id", p.ID).Str("nombre", p.Name).Msg("producto creado")
		created++
	}

	log.Info().Int("creados", created).Int("omitidos", skipped).Msg("carga terminada")
}
