// Package pdf genera el informe de analítica en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: entradas y montos totales / validados / pendientes │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLAS: por empresa, por empleado, por mes                  │
//	│          Nombre | Entradas | Validadas | Monto               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	"github.com/jhoicas/paytrack-api/internal/application/analytics"
	"github.com/jhoicas/paytrack-api/internal/application/dto"
)

var _ analytics.ReportRenderer = (*AnalyticsReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// AnalyticsReportGenerator implementa analytics.ReportRenderer usando Maroto v2.
type AnalyticsReportGenerator struct {
	appName string
}

// NewAnalyticsReportGenerator construye el generador; appName aparece como autor del PDF.
func NewAnalyticsReportGenerator(appName string) *AnalyticsReportGenerator {
	return &AnalyticsReportGenerator{appName: appName}
}

// RenderAnalytics genera el PDF y devuelve sus bytes.
func (g *AnalyticsReportGenerator) RenderAnalytics(
	_ context.Context,
	report *dto.AnalyticsDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Analítica de pagos", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report)...)

	sections := []struct {
		title  string
		groups []dto.AnalyticsGroupDTO
	}{
		{"POR EMPRESA", report.ByCompany},
		{"POR EMPLEADO", report.ByEmployee},
		{"POR MES", report.ByMonth},
	}
	for _, s := range sections {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionTitleRow(s.title))
		m.AddRows(tableHeaderRow())
		m.AddRows(groupRows(s.groups)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("ANALÍTICA DE PAGOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRows(r *dto.AnalyticsDTO) []core.Row {
	cell := func(label, count string, amount decimal.Decimal) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(count+" entradas", props.Text{Size: 10, Top: 6}),
			text.New("$"+formatMoney(amount), props.Text{Size: 10, Top: 11, Style: fontstyle.Bold}),
		)
	}
	return []core.Row{
		row.New(18).Add(
			cell("TOTAL", fmt.Sprint(r.TotalEntries), r.TotalAmount),
			cell("VALIDADAS", fmt.Sprint(r.ValidatedEntries), r.ValidatedAmount),
			cell("PENDIENTES", fmt.Sprint(r.PendingEntries), r.PendingAmount),
		),
	}
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Nombre", 6, align.Left),
		h("Entradas", 2, align.Center),
		h("Validadas", 2, align.Center),
		h("Monto", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

func groupRows(groups []dto.AnalyticsGroupDTO) []core.Row {
	if len(groups) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	result := make([]core.Row, 0, len(groups))
	for _, gr := range groups {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(gr.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprint(gr.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprint(gr.Validated), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(gr.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 1500.5 → "1.500,50", 1000000 → "1.000.000,00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
