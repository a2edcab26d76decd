package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// ManualMovementInput dati per un movimento manuale (senza documento).
// CARICO richiede ToWarehouseID, SCARICO richiede FromWarehouseID,
// TRASFERIMENTO entrambi e distinti.
type ManualMovementInput struct {
	Kind            string
	ArticleID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Note            string
}

// RegisterManualMovement registra un movimento non legato a documenti: carico o
// scarico diretto, oppure trasferimento tra magazzini (un solo movimento con
// origine e destinazione, due giacenze aggiornate nella stessa transazione).
// Scarico e gamba in uscita del trasferimento rispettano l'invariante di non
// negatività come qualunque altro decremento.
func (s *Service) RegisterManualMovement(ctx context.Context, input ManualMovementInput) (string, error) {
	if input.ArticleID == "" {
		return "", domain.Validationf("articolo obbligatorio")
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.Validationf("quantità deve essere positiva")
	}
	switch input.Kind {
	case entity.MovementInbound:
		if input.ToWarehouseID == "" {
			return "", domain.Validationf("magazzino di arrivo obbligatorio per il carico")
		}
	case entity.MovementOutbound:
		if input.FromWarehouseID == "" {
			return "", domain.Validationf("magazzino di partenza obbligatorio per lo scarico")
		}
	case entity.MovementTransfer:
		if input.FromWarehouseID == "" || input.ToWarehouseID == "" {
			return "", domain.Validationf("trasferimento richiede partenza e arrivo")
		}
		if input.FromWarehouseID == input.ToWarehouseID {
			return "", domain.Validationf("partenza e arrivo non possono coincidere")
		}
	default:
		return "", domain.Validationf("tipo movimento %q non valido", input.Kind)
	}

	art, err := s.articles.GetByID(ctx, input.ArticleID)
	if err != nil {
		return "", err
	}
	if art == nil {
		return "", domain.ErrNotFound
	}
	for _, whID := range []string{input.FromWarehouseID, input.ToWarehouseID} {
		if whID == "" {
			continue
		}
		wh, err := s.warehouses.GetByID(ctx, whID)
		if err != nil {
			return "", err
		}
		if wh == nil {
			return "", domain.ErrNotFound
		}
	}

	qty := entity.QuantizeQty(input.Quantity)
	movementID := uuid.New().String()

	err = s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		now := time.Now().UTC()
		mov := &entity.Movement{
			ID:        movementID,
			Date:      now,
			ArticleID: input.ArticleID,
			Quantity:  qty,
			Kind:      input.Kind,
			Note:      strings.TrimSpace(input.Note),
			CreatedAt: now,
		}
		if input.FromWarehouseID != "" {
			if err := applyStockDelta(ctx, r, input.ArticleID, input.FromWarehouseID, qty.Neg()); err != nil {
				return err
			}
			mov.FromWarehouseID = &input.FromWarehouseID
		}
		if input.ToWarehouseID != "" {
			if err := applyStockDelta(ctx, r, input.ArticleID, input.ToWarehouseID, qty); err != nil {
				return err
			}
			mov.ToWarehouseID = &input.ToWarehouseID
		}
		return r.Movements().Record(ctx, mov)
	})
	if err != nil {
		return "", err
	}
	return movementID, nil
}
