// Package xmlexport genera l'export XML dei DDT per i gestionali contabili.
package xmlexport

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// DDTBuilderService costruisce l'XML di un documento confermato.
type DDTBuilderService struct{}

// NewDDTBuilderService crea il servizio.
func NewDDTBuilderService() *DDTBuilderService {
	return &DDTBuilderService{}
}

// Build genera i byte del documento XML. Solo documenti numerati: per le bozze
// non esiste ancora una identità fiscale da esportare.
func (s *DDTBuilderService) Build(
	doc *entity.Document,
	partner *entity.Partner,
	warehouse *entity.Warehouse,
	lines []*entity.DocumentLine,
) ([]byte, error) {
	if doc.Number == nil || doc.Year == nil || doc.Date == nil {
		return nil, fmt.Errorf("xml: documento %s senza numero assegnato", doc.ID)
	}

	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.CreateElement("DocumentoTrasporto")
	root.CreateAttr("versione", "1.0")

	testata := root.CreateElement("Testata")
	testata.CreateElement("Tipo").SetText(doc.Type)
	testata.CreateElement("Numero").SetText(fmt.Sprintf("%d", *doc.Number))
	testata.CreateElement("Anno").SetText(fmt.Sprintf("%d", *doc.Year))
	testata.CreateElement("Data").SetText(doc.Date.Format("2006-01-02"))
	testata.CreateElement("Stato").SetText(string(doc.Status))
	if doc.SupplierRef != "" {
		testata.CreateElement("RifFornitore").SetText(doc.SupplierRef)
	}
	if doc.JobRef != "" {
		testata.CreateElement("Commessa").SetText(doc.JobRef)
	}

	cp := root.CreateElement("Controparte")
	cp.CreateElement("Nome").SetText(partner.Name)
	cp.CreateElement("Tipo").SetText(partner.Kind)

	mag := root.CreateElement("Magazzino")
	mag.CreateElement("Codice").SetText(warehouse.Code)
	mag.CreateElement("Nome").SetText(warehouse.Name)

	righe := root.CreateElement("Righe")
	for _, l := range lines {
		riga := righe.CreateElement("Riga")
		riga.CreateAttr("posizione", fmt.Sprintf("%d", l.Position))
		riga.CreateElement("Descrizione").SetText(l.Description)
		riga.CreateElement("Quantita").SetText(l.Quantity.StringFixed(entity.QtyPrecision))
		riga.CreateElement("PrezzoUnitario").SetText(l.UnitPrice.StringFixed(entity.MoneyPrecision))
		riga.CreateElement("Importo").SetText(l.Quantity.Mul(l.UnitPrice).StringFixed(entity.MoneyPrecision))
		if l.LedgerCode != "" {
			riga.CreateElement("Mastrino").SetText(l.LedgerCode)
		}
	}

	root.CreateElement("GeneratoIl").SetText(time.Now().UTC().Format(time.RFC3339))

	d.Indent(2)
	out, err := d.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializza documento: %w", err)
	}
	return out, nil
}
