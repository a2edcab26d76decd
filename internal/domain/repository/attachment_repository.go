package repository

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// AttachmentRepository è il port di persistenza per gli allegati documento.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Attachment, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}
