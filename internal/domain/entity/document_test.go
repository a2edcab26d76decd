package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

func TestConfirmCheck(t *testing.T) {
	cases := []struct {
		status entity.DocumentStatus
		noop   bool
		ok     bool
	}{
		{entity.StatusDraft, false, true},
		{entity.StatusConfirmed, true, false},
		{entity.StatusReversed, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			doc := &entity.Document{Status: tc.status}
			noop, ok := doc.ConfirmCheck()
			assert.Equal(t, tc.noop, noop)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestReverseCheck(t *testing.T) {
	cases := []struct {
		status entity.DocumentStatus
		noop   bool
		ok     bool
	}{
		{entity.StatusDraft, false, false},
		{entity.StatusConfirmed, false, true},
		{entity.StatusReversed, true, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			doc := &entity.Document{Status: tc.status}
			noop, ok := doc.ReverseCheck()
			assert.Equal(t, tc.noop, noop)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestVoidCheck(t *testing.T) {
	assert.True(t, (&entity.Document{Status: entity.StatusDraft}).VoidCheck())
	assert.False(t, (&entity.Document{Status: entity.StatusConfirmed}).VoidCheck())
	assert.False(t, (&entity.Document{Status: entity.StatusReversed}).VoidCheck())
}

func TestMovementKinds(t *testing.T) {
	in := &entity.Document{Type: entity.DocumentTypeIn}
	out := &entity.Document{Type: entity.DocumentTypeOut}

	assert.Equal(t, entity.MovementInbound, in.MovementKind())
	assert.Equal(t, entity.MovementReversalIn, in.ReversalKind())
	assert.Equal(t, entity.MovementOutbound, out.MovementKind())
	assert.Equal(t, entity.MovementReversalOut, out.ReversalKind())
}

func TestSignedQuantityFor(t *testing.T) {
	from, to := "mag1", "furg1"
	mov := &entity.Movement{
		Quantity:        decimal.RequireFromString("3.500"),
		Kind:            entity.MovementTransfer,
		FromWarehouseID: &from,
		ToWarehouseID:   &to,
	}

	assert.True(t, mov.SignedQuantityFor("furg1").Equal(decimal.RequireFromString("3.500")))
	assert.True(t, mov.SignedQuantityFor("mag1").Equal(decimal.RequireFromString("-3.500")))
	assert.True(t, mov.SignedQuantityFor("altro").IsZero())
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, "2.667", entity.QuantizeQty(decimal.RequireFromString("2.6666")).StringFixed(3))
	assert.Equal(t, "10.13", entity.QuantizeMoney(decimal.RequireFromString("10.125")).StringFixed(2))
}
