package ai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"oggetto nudo",
			`{"supplier_name":"Rossi"}`,
			`{"supplier_name":"Rossi"}`,
		},
		{
			"blocco markdown",
			"```json\n{\"supplier_name\":\"Rossi\"}\n```",
			`{"supplier_name":"Rossi"}`,
		},
		{
			"preambolo del modello",
			"Ecco i dati estratti:\n{\"supplier_name\":\"Rossi\"}",
			`{"supplier_name":"Rossi"}`,
		},
		{
			"nessun JSON",
			"Non riesco a leggere il documento.",
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}

// Le quantità arrivano dal modello come stringhe decimali: il tipo decimal le
// accetta direttamente in unmarshal.
func TestParsedDocumentDecodesDecimalStrings(t *testing.T) {
	raw := extractJSON("```json\n" + `{
  "supplier_name": "Idraulica Rossi S.r.l.",
  "supplier_vat": "01234567890",
  "document_ref": "481/2026",
  "document_date": "2026-08-12",
  "lines": [
    {"supplier_code": "TR22", "description": "Tubo rame 22mm", "quantity": "2.5", "unit": "MT", "unit_price": "4.80"}
  ]
}` + "\n```")
	require.NotEmpty(t, raw)

	var parsed dto.ParsedDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	assert.Equal(t, "Idraulica Rossi S.r.l.", parsed.SupplierName)
	require.Len(t, parsed.Lines, 1)
	assert.Equal(t, "2.5", parsed.Lines[0].Quantity.String())
	assert.Equal(t, "4.8", parsed.Lines[0].UnitPrice.String())
}

func TestParseDocumentRequiresAPIKey(t *testing.T) {
	svc := NewAnthropicService("", "claude-3-5-haiku-20241022")

	_, err := svc.ParseDocument(context.Background(), []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}
