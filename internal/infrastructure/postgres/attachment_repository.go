package postgres

import (
	"context"
	"fmt"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ repository.AttachmentRepository = (*AttachmentRepo)(nil)

// AttachmentRepo implementazione di AttachmentRepository su PostgreSQL.
type AttachmentRepo struct {
	q Querier
}

func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

func (r *AttachmentRepo) Create(ctx context.Context, attachment *entity.Attachment) error {
	query := `
		INSERT INTO allegati (id, documento_id, filename, mime, path, size, checksum, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		attachment.ID, attachment.DocumentID, attachment.Filename, attachment.MIME,
		attachment.Path, attachment.Size, attachment.Checksum, attachment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create allegato: %w", err)
	}
	return nil
}

func (r *AttachmentRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Attachment, error) {
	query := `
		SELECT id, documento_id, filename, mime, path, size, checksum, created_at
		FROM allegati WHERE documento_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list allegati: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.Filename, &a.MIME, &a.Path, &a.Size, &a.Checksum, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allegato: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AttachmentRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM allegati WHERE documento_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete allegati documento: %w", err)
	}
	return nil
}
