package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/ports"
)

// Verifica a compile time che AnthropicService implementi DocumentParser.
var _ ports.DocumentParser = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Sei un assistente che estrae dati strutturati dai DDT (documenti di trasporto) dei fornitori italiani.
Rispondi ESCLUSIVAMENTE con un oggetto JSON valido (niente markdown, niente blocchi di codice` + " ```json" + `) con questa struttura esatta:
{
  "supplier_name": "<ragione sociale del fornitore>",
  "supplier_vat": "<partita IVA se presente, altrimenti stringa vuota>",
  "document_ref": "<numero del DDT come appare sul documento>",
  "document_date": "<data del DDT in formato YYYY-MM-DD>",
  "lines": [
    {
      "supplier_code": "<codice articolo del fornitore, stringa vuota se assente>",
      "description": "<descrizione della riga>",
      "quantity": "<quantità come stringa decimale, es. \"2.5\">",
      "unit": "<unità di misura come appare, es. PZ, MT, KG>",
      "unit_price": "<prezzo unitario come stringa decimale, \"0\" se assente>"
    }
  ]
}

Regole:
- Una entry in lines per ogni riga merce del documento; ignora righe di trasporto, imballo e totali.
- quantity e unit_price sempre come stringhe decimali con il punto come separatore.
- Nessun testo fuori dal JSON. Solo l'oggetto JSON.`
)

// AnthropicService adapter che implementa DocumentParser usando la Messages API
// di Anthropic (Claude). Il PDF viene inviato come blocco document base64;
// usa net/http, non serve l'SDK ufficiale.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService costruisce l'adapter.
// Se apiKey è vuota le chiamate ritornano errore descrittivo invece di panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout di rete di 60 s: i PDF multi pagina richiedono più del semplice testo.
			Timeout: 60 * time.Second,
		},
	}
}

// ── Strutture interne del protocollo Anthropic Messages API ───────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

type anthropicContentBlock struct {
	Type   string                 `json:"type"`
	Text   string                 `json:"text,omitempty"`
	Source *anthropicSourceBase64 `json:"source,omitempty"`
}

type anthropicSourceBase64 struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe estrae il primo oggetto JSON dal testo anche se il modello lo
// avvolge in markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementazione del port ──────────────────────────────────────────────────

// ParseDocument invia il PDF a Claude e ritorna le righe candidate estratte.
func (s *AnthropicService) ParseDocument(ctx context.Context, pdf []byte) (*dto.ParsedDocument, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY non configurata")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 4096,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContentBlock{
					{
						Type: "document",
						Source: &anthropicSourceBase64{
							Type:      "base64",
							MediaType: "application/pdf",
							Data:      base64.StdEncoding.EncodeToString(pdf),
						},
					},
					{Type: "text", Text: "Estrai i dati di questo DDT."},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializza request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crea HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancellazione: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: chiamata HTTP fallita: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("AI: leggi risposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: deserializza risposta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: risposta vuota dal modello")
	}

	cleanJSON := extractJSON(anthResp.Content[0].Text)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: nessun JSON valido nella risposta del modello (risposta: %s)", anthResp.Content[0].Text)
	}

	var parsed dto.ParsedDocument
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		return nil, fmt.Errorf("AI: parse JSON estratto: %w (JSON: %s)", err, cleanJSON)
	}
	return &parsed, nil
}

// extractJSON estrae il primo oggetto JSON ben formato da testo libero.
// Due passi: rimuove i blocchi markdown, poi cattura il primo blocco { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
