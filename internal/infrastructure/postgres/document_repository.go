package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementazione di DocumentRepository su PostgreSQL (pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, tipo, numero, anno, data, stato, partner_id, magazzino_id, rif_fornitore, rif_commessa, note, created_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.Type, &d.Number, &d.Year, &d.Date, &d.Status,
		&d.PartnerID, &d.WarehouseID, &d.SupplierRef, &d.JobRef, &d.Note, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste una nuova testata in bozza.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documenti (id, tipo, numero, anno, data, stato, partner_id, magazzino_id, rif_fornitore, rif_commessa, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Type, doc.Number, doc.Year, doc.Date, doc.Status,
		doc.PartnerID, doc.WarehouseID, doc.SupplierRef, doc.JobRef, doc.Note, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create documento: %w", err)
	}
	return nil
}

// GetByID ritorna la testata, nil se assente.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documenti WHERE id = $1`
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return doc, nil
}

// GetForUpdate blocca la testata (SELECT FOR UPDATE) per serializzare le
// transizioni di stato concorrenti.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documenti WHERE id = $1 FOR UPDATE`
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento for update: %w", err)
	}
	return doc, nil
}

// UpdateHeader aggiorna i campi modificabili della testata (solo in bozza,
// il controllo di stato è dell'application layer).
func (r *DocumentRepo) UpdateHeader(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documenti
		SET partner_id = $2, magazzino_id = $3, rif_fornitore = $4, rif_commessa = $5, note = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, doc.ID, doc.PartnerID, doc.WarehouseID, doc.SupplierRef, doc.JobRef, doc.Note)
	if err != nil {
		return fmt.Errorf("update testata: %w", err)
	}
	return nil
}

// SetConfirmed scrive numero, anno, data e stato assegnati in conferma.
// La violazione del vincolo UNIQUE (tipo, anno, numero) risale come
// domain.ErrDuplicate e fa ripartire la transazione di conferma.
func (r *DocumentRepo) SetConfirmed(ctx context.Context, doc *entity.Document) error {
	query := `UPDATE documenti SET numero = $2, anno = $3, data = $4, stato = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, doc.ID, doc.Number, doc.Year, doc.Date, doc.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("numero %d/%d già assegnato: %w", *doc.Number, *doc.Year, domain.ErrDuplicate)
		}
		return fmt.Errorf("set confermato: %w", err)
	}
	return nil
}

// SetStatus aggiorna il solo stato.
func (r *DocumentRepo) SetStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	_, err := r.q.Exec(ctx, `UPDATE documenti SET stato = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set stato: %w", err)
	}
	return nil
}

// Delete rimuove la testata (annullo di una bozza).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documenti WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete documento: %w", err)
	}
	return nil
}

// List ritorna le testate che soddisfano il filtro, le più recenti prima.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documenti WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Type != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND stato = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND data >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND data <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	if filter.Text != "" {
		query += fmt.Sprintf(` AND (note ILIKE $%d OR rif_commessa ILIKE $%d
			OR EXISTS (SELECT 1 FROM partner p WHERE p.id = documenti.partner_id AND p.nome ILIKE $%d))`, pos, pos, pos)
		args = append(args, "%"+filter.Text+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documenti: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// CountByStatus conta i documenti nello stato dato.
func (r *DocumentRepo) CountByStatus(ctx context.Context, status entity.DocumentStatus) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documenti WHERE stato = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documenti: %w", err)
	}
	return n, nil
}

// MaxNumber ritorna il massimo numero assegnato per (tipo, anno), 0 se nessuno.
// I documenti stornati restano in tabella: i loro numeri non vengono mai riusati.
func (r *DocumentRepo) MaxNumber(ctx context.Context, docType string, year int) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(numero), 0) FROM documenti WHERE tipo = $1 AND anno = $2`
	if err := r.q.QueryRow(ctx, query, docType, year).Scan(&max); err != nil {
		return 0, fmt.Errorf("max numero: %w", err)
	}
	return max, nil
}

const lineColumns = `id, documento_id, articolo_id, descrizione, quantita, prezzo_unitario, mastrino_codice, posizione, created_at`

func scanLine(row pgx.Row) (*entity.DocumentLine, error) {
	var l entity.DocumentLine
	err := row.Scan(
		&l.ID, &l.DocumentID, &l.ArticleID, &l.Description,
		&l.Quantity, &l.UnitPrice, &l.LedgerCode, &l.Position, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// AddLine persiste una riga documento.
func (r *DocumentRepo) AddLine(ctx context.Context, line *entity.DocumentLine) error {
	query := `
		INSERT INTO righe_documento (id, documento_id, articolo_id, descrizione, quantita, prezzo_unitario, mastrino_codice, posizione, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.DocumentID, line.ArticleID, line.Description,
		line.Quantity, line.UnitPrice, line.LedgerCode, line.Position, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add riga: %w", err)
	}
	return nil
}

// GetLine ritorna una riga per ID, nil se assente.
func (r *DocumentRepo) GetLine(ctx context.Context, lineID string) (*entity.DocumentLine, error) {
	query := `SELECT ` + lineColumns + ` FROM righe_documento WHERE id = $1`
	line, err := scanLine(r.q.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get riga: %w", err)
	}
	return line, nil
}

// UpdateLine aggiorna i campi modificabili di una riga.
func (r *DocumentRepo) UpdateLine(ctx context.Context, line *entity.DocumentLine) error {
	query := `
		UPDATE righe_documento
		SET articolo_id = $2, descrizione = $3, quantita = $4, prezzo_unitario = $5, mastrino_codice = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.ArticleID, line.Description, line.Quantity, line.UnitPrice, line.LedgerCode,
	)
	if err != nil {
		return fmt.Errorf("update riga: %w", err)
	}
	return nil
}

// DeleteLine elimina una riga.
func (r *DocumentRepo) DeleteLine(ctx context.Context, lineID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM righe_documento WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete riga: %w", err)
	}
	return nil
}

// ListLines ritorna le righe del documento in ordine di posizione.
func (r *DocumentRepo) ListLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error) {
	query := `SELECT ` + lineColumns + ` FROM righe_documento WHERE documento_id = $1 ORDER BY posizione`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list righe: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan riga: %w", err)
		}
		list = append(list, line)
	}
	return list, rows.Err()
}

// DeleteLinesByDocument elimina tutte le righe del documento (annullo bozza).
func (r *DocumentRepo) DeleteLinesByDocument(ctx context.Context, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM righe_documento WHERE documento_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete righe documento: %w", err)
	}
	return nil
}
