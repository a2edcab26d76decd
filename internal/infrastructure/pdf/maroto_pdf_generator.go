// Package pdf genera la stampa del DDT (documento di trasporto).
//
// Layout della pagina A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo documento  │  Numero/Anno + Data              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTROPARTE: nome + riferimento fornitore                  │
//	│  MAGAZZINO: codice + nome                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLA: Pos | Descrizione | Q.tà | Prezzo | Importo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALE documento                                           │
//	│  FOOTER: commessa + note                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// ── Palette colori ────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera la stampa DDT usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator costruisce il generatore con l'intestazione aziendale.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{companyName: companyName}
}

// GenerateDocumentPDF genera il PDF del documento e ritorna i suoi byte.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	partner *entity.Partner,
	warehouse *entity.Warehouse,
	lines []*entity.DocumentLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento di Trasporto", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc, partner, warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, l := range lines {
		m.AddRows(lineRow(l))
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: genera documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Sezioni ───────────────────────────────────────────────────────────────────

// headerRow: intestazione aziendale (sx) e numero/data documento (dx).
func (g *MarotoPDFGenerator) headerRow(doc *entity.Document) core.Row {
	title := "DDT DI INGRESSO"
	if doc.Type == entity.DocumentTypeOut {
		title = "DDT DI USCITA"
	}
	number := "BOZZA"
	date := "—"
	if doc.Number != nil && doc.Year != nil {
		number = fmt.Sprintf("%d/%d", *doc.Number, *doc.Year)
	}
	if doc.Date != nil {
		date = doc.Date.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento di Trasporto", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow: controparte e magazzino.
func partiesRow(doc *entity.Document, partner *entity.Partner, warehouse *entity.Warehouse) core.Row {
	label := "DESTINATARIO"
	if doc.Type == entity.DocumentTypeIn {
		label = "FORNITORE"
	}
	ref := doc.SupplierRef
	if ref == "" {
		ref = "—"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(partner.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Rif. documento: "+ref, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("MAGAZZINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s", warehouse.Code, warehouse.Name), props.Text{
				Size: 9, Align: align.Right, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: intestazione della tabella righe.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Pos.", 1, align.Center),
		h("Descrizione", 6, align.Left),
		h("Q.tà", 1, align.Right),
		h("Prezzo", 2, align.Right),
		h("Importo", 2, align.Right),
	)
}

// lineRow: una riga di tabella per riga documento.
func lineRow(l *entity.DocumentLine) core.Row {
	amount := l.Quantity.Mul(l.UnitPrice)
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", l.Position),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			l.Description,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(1).Add(text.New(
			l.Quantity.StringFixed(entity.QtyPrecision),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			"€ "+l.UnitPrice.StringFixed(entity.MoneyPrecision),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			"€ "+amount.StringFixed(entity.MoneyPrecision),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: totale documento, allineato a destra.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTALE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New("€ "+total.StringFixed(entity.MoneyPrecision), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: commessa e note, se presenti.
func footerRows(doc *entity.Document) []core.Row {
	var rows []core.Row
	if doc.JobRef != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Commessa: "+doc.JobRef, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	if doc.Note != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Note: "+doc.Note, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	if doc.Status == entity.StatusReversed {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("DOCUMENTO STORNATO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 2,
			}),
		)))
	}
	return rows
}
