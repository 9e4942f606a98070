// Package pdf genera el reporte de auditoría de consistencia de estoque en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Auditados / Consistentes / Con divergencia         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Guardado | Calculado | Diferencia         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

var _ inventory.AuditReportRenderer = (*MarotoAuditRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoAuditRenderer implementa inventory.AuditReportRenderer usando Maroto v2.
type MarotoAuditRenderer struct {
	author string
}

// NewMarotoAuditRenderer construye el generador. author aparece en los metadatos del PDF.
func NewMarotoAuditRenderer(author string) *MarotoAuditRenderer {
	return &MarotoAuditRenderer{author: author}
}

// RenderAuditReport genera el PDF y lo escribe en w.
func (g *MarotoAuditRenderer) RenderAuditReport(report *inventory.AuditReport, w io.Writer) error {
	if report == nil {
		return fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Auditoria de estoque", true).
		WithAuthor(nonEmpty(g.author, "estoque-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(report.Discrepancies) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nenhuma divergência encontrada.", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorOK, Top: 3,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(report.Discrepancies)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *inventory.AuditReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("AUDITORIA DE CONSISTÊNCIA DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Saldo armazenado vs. histórico de movimentações", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(report *inventory.AuditReport) core.Row {
	cell := func(label string, value int, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 6,
			}),
		)
	}
	divergent := colorOK
	if len(report.Discrepancies) > 0 {
		divergent = colorAlert
	}
	return row.New(14).Add(
		cell("Produtos auditados", report.Checked, colorPrimary),
		cell("Consistentes", report.Consistent, colorOK),
		cell("Com divergência", len(report.Discrepancies), divergent),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 6, align.Left),
		h("Armazenado", 2, align.Right),
		h("Calculado", 2, align.Right),
		h("Diferença", 2, align.Right),
	)
}

// tableDetailRows una fila por producto con divergencia.
func tableDetailRows(list []inventory.Discrepancy) []core.Row {
	result := make([]core.Row, 0, len(list))
	for _, d := range list {
		name := d.ProductName
		if name == "" {
			name = d.ProductID
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQty(d.Stored), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQty(d.Computed), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(signed(d.Difference), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Diferença = saldo armazenado - soma das movimentações. "+
				"Divergências abaixo de 0,01 são ignoradas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty dos decimales con coma, como se escribe en pt-BR. Ej: 1234.5 → "1234,50"
func formatQty(v decimal.Decimal) string {
	s := v.StringFixed(2)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[:i] + "," + s[i+1:]
		}
	}
	return s
}

func signed(v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + formatQty(v)
	}
	return formatQty(v)
}
