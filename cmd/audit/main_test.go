package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &inventory.AuditReport{
		GeneratedAt: time.Now(),
		Checked:     2,
		Consistent:  1,
		Discrepancies: []inventory.Discrepancy{{
			ProductID: "p1", ProductName: "Arroz",
			Stored: decimal.NewFromInt(15), Computed: decimal.NewFromInt(10), Difference: decimal.NewFromInt(5),
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "productos auditados: 2, consistentes: 1, divergentes: 1")
	assert.Contains(t, out, "Arroz (p1): registrado=15 calculado=10 diferencia=5")
}

func TestRun_MemoriaVaciaSinDivergencias(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	var buf bytes.Buffer

	code := run("", "", &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "productos auditados: 0")
}

func TestRun_ProductoInexistente(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	assert.Equal(t, 1, run("no-existe", "", &bytes.Buffer{}))
}
