// Package gemini queries the Gemini API, grounded with Google Search, for a
// fund's current NAV and price history. It returns the raw response text;
// turning that noisy text into a clean history is the nav package's job.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/etnz/misfondos"
	"google.golang.org/genai"
)

const (
	// DefaultModel balances cost and search-grounding quality for this
	// kind of lookup.
	DefaultModel = "gemini-2.0-flash"

	maxAttempts = 3
	retryDelay  = 2 * time.Second
)

// config enables search grounding: NAV data lives on Morningstar and the
// managers' sites, not in the model.
var config = &genai.GenerateContentConfig{
	Tools: []*genai.Tool{
		{GoogleSearch: &genai.GoogleSearch{}},
	},
}

// Provider is a NAV search client backed by Gemini.
type Provider struct {
	Model  string
	client *genai.Client
}

// New creates a Provider. The client reads its API key from the environment
// (GEMINI_API_KEY or GOOGLE_API_KEY).
func New(ctx context.Context) (*Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Provider{Model: DefaultModel, client: client}, nil
}

// Search asks Gemini for the fund's NAV history and returns the raw response
// text. Rate-limited calls are retried with a linear backoff before giving up.
func (p *Provider) Search(ctx context.Context, f *misfondos.Fund) (string, error) {
	prompt := Prompt(f)
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := p.client.Models.GenerateContent(ctx, p.Model, genai.Text(prompt), config)
		if err == nil {
			return resp.Text(), nil
		}
		lastErr = err
		if !rateLimited(err) {
			return "", fmt.Errorf("querying %s for %s: %w", p.Model, f.ISIN, err)
		}
		delay := time.Duration(attempt) * retryDelay
		log.Printf("gemini: rate limited on %s, retrying in %s (attempt %d/%d)", f.ISIN, delay, attempt, maxAttempts)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", fmt.Errorf("querying %s for %s: %w", p.Model, f.ISIN, lastErr)
}

func rateLimited(err error) bool {
	var apiErr genai.APIError
	return errors.As(err, &apiErr) && apiErr.Code == 429
}

// Prompt builds the search request for one fund. It asks for a monthly NAV
// table first and percentage returns as a fallback, and for a machine
// readable block wrapped in the markers the extractor looks for.
func Prompt(f *misfondos.Fund) string {
	return fmt.Sprintf(`Busca en la web el valor liquidativo (VL/NAV) del fondo de inversión con ISIN %s (%s).

Necesito:
1. El valor liquidativo más reciente publicado, con su fecha exacta y divisa.
2. PLAN A: una tabla mensual de valores liquidativos de los últimos 24 meses
   (una línea por mes: fecha y valor, por ejemplo "31/12/2024 ; 123,45").
3. PLAN B: si no encuentras la tabla, las rentabilidades en porcentaje:
   1 mes, 3 meses, 6 meses, 1 año, 3 años, YTD y por año natural (2024, 2023...).

Fuentes preferidas: Morningstar, la gestora del fondo, Investing.com, Financial Times.

Al final de tu respuesta incluye SIEMPRE un bloque JSON con esta forma exacta,
delimitado por los marcadores:

### JSON_START ###
{
  "current": {"nav": 123.45, "date": "2025-08-28", "currency": "EUR", "is_real_time": false},
  "history": [{"date": "2025-07-31", "nav": 122.90}],
  "annual_performance": {"ytd": 5.2, "2024": 8.1, "1m": 0.5},
  "debug_reason": "fuente y notas"
}
### JSON_END ###

Usa null o omite los campos que no encuentres. No inventes valores.`, f.ISIN, f.Name)
}
