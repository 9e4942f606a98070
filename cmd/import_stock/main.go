// import_stock carga el saldo inicial desde una planilla CSV (exportación de Excel, separador ';').
// Cada fila crea el producto y registra una entrada con la cantidad informada, de modo que el
// historial de movimientos explica el saldo desde el primer día.
//
// Uso: go run ./cmd/import_stock [-charset windows-1252|iso-8859-1|utf-8] [-dry-run] planilla.csv
//
// Columnas esperadas (cabecera obligatoria, en cualquier orden):
//
//	nome;unidade_medida;estoque_minimo;quantidade
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// importOperator operador que figura en las entradas generadas.
const importOperator = "importacao"

func main() {
	charset := flag.String("charset", "windows-1252", "codificación del archivo")
	dryRun := flag.Bool("dry-run", false, "solo validar, sin escribir")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_stock [-charset ...] [-dry-run] planilla.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseRows(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%d filas válidas\n", len(rows))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	products := usecase.NewProductUseCase(backend.Products, backend.Warehouses, backend.Suppliers)
	ledger := inventory.NewLedgerUseCase(backend.Tx, backend.Movements, backend.Corrections, log)

	n, err := importRows(ctx, rows, products, ledger, os.Stdout)
	if err != nil {
		log.Error().Err(err).Int("importados", n).Msg("importación interrumpida")
		os.Exit(1)
	}
	fmt.Printf("Importados %d productos\n", n)
}

// importRows crea cada producto y su entrada inicial. Se detiene en el primer error.
func importRows(ctx context.Context, rows []stockRow, products *usecase.ProductUseCase, ledger *inventory.LedgerUseCase, out io.Writer) (int, error) {
	for i, r := range rows {
		p, err := products.Create(ctx, dto.CreateProductRequest{
			Name:         r.Name,
			UnitMeasure:  r.UnitMeasure,
			MinimumStock: r.MinimumStock,
		})
		if err != nil {
			return i, fmt.Errorf("línea %d (%s): %w", r.Line, r.Name, err)
		}
		if r.Quantity.IsPositive() {
			if _, err := ledger.RecordMovement(ctx, inventory.RecordMovementInput{
				ProductID: p.ID,
				Type:      string(entity.MovementEntrada),
				Quantity:  r.Quantity,
				Operator:  importOperator,
				Note:      "saldo inicial",
			}); err != nil {
				return i, fmt.Errorf("línea %d (%s): %w", r.Line, r.Name, err)
			}
		}
		fmt.Fprintf(out, "  %s: %s %s\n", r.Name, r.Quantity, p.UnitMeasure)
	}
	return len(rows), nil
}
