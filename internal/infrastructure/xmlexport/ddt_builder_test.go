package xmlexport

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

func confirmedDocument() (*entity.Document, *entity.Partner, *entity.Warehouse, []*entity.DocumentLine) {
	number, year := 42, 2026
	date := time.Date(2026, 8, 12, 10, 30, 0, 0, time.UTC)
	doc := &entity.Document{
		ID:          "doc-1",
		Type:        entity.DocumentTypeIn,
		Number:      &number,
		Year:        &year,
		Date:        &date,
		Status:      entity.StatusConfirmed,
		SupplierRef: "DDT 481 del 12/08/2026",
		JobRef:      "COMM-2026-017",
	}
	partner := &entity.Partner{Name: "Idraulica Rossi S.r.l.", Kind: entity.PartnerSupplier}
	warehouse := &entity.Warehouse{Code: "MAG1", Name: "Magazzino centrale"}
	lines := []*entity.DocumentLine{
		{
			Position:    1,
			Description: "Tubo rame 22mm",
			Quantity:    decimal.RequireFromString("2.5"),
			UnitPrice:   decimal.RequireFromString("4.80"),
			LedgerCode:  "0590001003",
		},
		{
			Position:    2,
			Description: "Valvola a sfera 1/2",
			Quantity:    decimal.RequireFromString("4"),
			UnitPrice:   decimal.RequireFromString("7.20"),
		},
	}
	return doc, partner, warehouse, lines
}

func TestBuildConfirmedDocument(t *testing.T) {
	doc, partner, warehouse, lines := confirmedDocument()

	out, err := NewDDTBuilderService().Build(doc, partner, warehouse, lines)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))

	root := parsed.SelectElement("DocumentoTrasporto")
	require.NotNil(t, root)

	testata := root.SelectElement("Testata")
	require.NotNil(t, testata)
	assert.Equal(t, "DDT_IN", testata.SelectElement("Tipo").Text())
	assert.Equal(t, "42", testata.SelectElement("Numero").Text())
	assert.Equal(t, "2026", testata.SelectElement("Anno").Text())
	assert.Equal(t, "2026-08-12", testata.SelectElement("Data").Text())
	assert.Equal(t, "Confermato", testata.SelectElement("Stato").Text())
	assert.Equal(t, "COMM-2026-017", testata.SelectElement("Commessa").Text())

	assert.Equal(t, "Idraulica Rossi S.r.l.", root.SelectElement("Controparte").SelectElement("Nome").Text())
	assert.Equal(t, "MAG1", root.SelectElement("Magazzino").SelectElement("Codice").Text())

	righe := root.SelectElement("Righe").SelectElements("Riga")
	require.Len(t, righe, 2)
	assert.Equal(t, "1", righe[0].SelectAttrValue("posizione", ""))
	assert.Equal(t, "2.500", righe[0].SelectElement("Quantita").Text())
	assert.Equal(t, "4.80", righe[0].SelectElement("PrezzoUnitario").Text())
	assert.Equal(t, "12.00", righe[0].SelectElement("Importo").Text())
	assert.Equal(t, "0590001003", righe[0].SelectElement("Mastrino").Text())
	assert.Nil(t, righe[1].SelectElement("Mastrino"), "mastrino assente sulla riga senza codice")
}

func TestBuildRejectsDraft(t *testing.T) {
	doc, partner, warehouse, lines := confirmedDocument()
	doc.Number, doc.Year, doc.Date = nil, nil, nil
	doc.Status = entity.StatusDraft

	_, err := NewDDTBuilderService().Build(doc, partner, warehouse, lines)
	assert.Error(t, err)
}
