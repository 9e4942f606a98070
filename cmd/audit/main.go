// audit recalcula el saldo de cada producto a partir del libro de movimientos y lo compara con
// estoque_atual. Termina con código 2 si encuentra divergencias.
//
// Uso:
//
//	go run ./cmd/audit                      # todos los productos
//	go run ./cmd/audit -product <id>        # un producto
//	go run ./cmd/audit -pdf auditoria.pdf   # además escribe el reporte en PDF
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const exitDrift = 2

func main() {
	productID := flag.String("product", "", "auditar solo este producto")
	pdfPath := flag.String("pdf", "", "ruta donde escribir el reporte PDF")
	flag.Parse()

	os.Exit(run(*productID, *pdfPath, os.Stdout))
}

func run(productID, pdfPath string, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("abrir almacenamiento")
		return 1
	}
	defer backend.Close()

	ledger := inventory.NewLedgerUseCase(backend.Tx, backend.Movements, backend.Corrections, log)
	auditUC := inventory.NewAuditUseCase(backend.Products, backend.Movements, ledger,
		infrapdf.NewMarotoAuditRenderer(cfg.App.Name), log)

	if productID != "" {
		res, err := auditUC.AuditProduct(ctx, productID)
		if err != nil {
			log.Error().Err(err).Str("product_id", productID).Msg("auditoría")
			return 1
		}
		printResult(out, res)
		if !res.Match {
			return exitDrift
		}
		return 0
	}

	var report *inventory.AuditReport
	if pdfPath != "" {
		f, err := os.Create(pdfPath)
		if err != nil {
			log.Error().Err(err).Msg("crear archivo PDF")
			return 1
		}
		report, err = auditUC.AuditReportPDF(ctx, f)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			log.Error().Err(err).Msg("auditoría")
			return 1
		}
		log.Info().Str("file", pdfPath).Msg("reporte PDF generado")
	} else {
		report, err = auditUC.AuditAll(ctx)
		if err != nil {
			log.Error().Err(err).Msg("auditoría")
			return 1
		}
	}

	printReport(out, report)
	if len(report.Discrepancies) > 0 {
		return exitDrift
	}
	return 0
}

func printResult(w io.Writer, r *inventory.AuditResult) {
	status := "OK"
	if !r.Match {
		status = "DIVERGENTE"
	}
	fmt.Fprintf(w, "%-10s %s (%s) registrado=%s calculado=%s movimientos=%d\n",
		status, r.ProductName, r.ProductID, r.Stored, r.Computed, r.Movements)
}

func printReport(w io.Writer, r *inventory.AuditReport) {
	fmt.Fprintf(w, "productos auditados: %d, consistentes: %d, divergentes: %d\n",
		r.Checked, r.Consistent, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		fmt.Fprintf(w, "  %s (%s): registrado=%s calculado=%s diferencia=%s\n",
			d.ProductName, d.ProductID, d.Stored, d.Computed, d.Difference)
	}
}
