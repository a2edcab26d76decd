package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acgclimaservice/magazzino/internal/application/ports"
	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// AttachFile registra il riferimento a un file già salvato nello store.
// Ammesso in qualsiasi stato tranne dopo l'annullo, che rimuove il documento.
func (s *Service) AttachFile(ctx context.Context, documentID, filename, mime string, stored *ports.StoredFile) (string, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", domain.ErrNotFound
	}
	att := &entity.Attachment{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Filename:   filename,
		MIME:       mime,
		Path:       stored.Path,
		Size:       stored.Size,
		Checksum:   stored.Checksum,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.attachs.Create(ctx, att); err != nil {
		return "", err
	}
	return att.ID, nil
}

// GetAttachment ritorna il riferimento a un allegato del documento.
func (s *Service) GetAttachment(ctx context.Context, documentID, attachmentID string) (*entity.Attachment, error) {
	attachments, err := s.attachs.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	for _, a := range attachments {
		if a.ID == attachmentID {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}
