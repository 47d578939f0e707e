// Package exchangerate fetches fiat rates from ExchangeRate-API.
//
// The API reports base → X rates in one document; quotes are inverted to
// the cache's X → base orientation before they are returned.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	valutatrade "github.com/valutatrade/hub"
)

const defaultBaseURL = "https://v6.exchangerate-api.com/v6"

// Source is a fiat quote source backed by ExchangeRate-API.
type Source struct {
	baseURL string
	apiKey  string
	base    string
	client  *http.Client
	now     func() time.Time
}

// New returns a Source quoting fiat currencies against the base currency.
func New(apiKey, base string) *Source {
	return &Source{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		base:    base,
		client:  &http.Client{},
		now:     time.Now,
	}
}

// NewWithBaseURL overrides the API endpoint, for tests.
func NewWithBaseURL(apiKey, base, baseURL string) *Source {
	s := New(apiKey, base)
	s.baseURL = baseURL
	return s
}

// Name implements valutatrade.QuoteSource.
func (s *Source) Name() string { return "exchangerate-api" }

// Codes returns all fiat codes except the base currency itself.
func (s *Source) Codes() []string {
	var codes []string
	for _, code := range valutatrade.FiatCodes() {
		if code != s.base {
			codes = append(codes, code)
		}
	}
	return codes
}

// latestResponse is the relevant part of the /latest document.
type latestResponse struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

// Fetch retrieves the latest base-currency document and inverts each rate.
// Codes the API did not report are absent from the result.
func (s *Source) Fetch(ctx context.Context, codes []string) (map[string]valutatrade.PriceQuote, error) {
	doc, err := s.latest(ctx)
	if err != nil {
		return nil, &valutatrade.SourceError{Source: s.Name(), Err: err}
	}

	ts := s.now().UTC()
	if doc.TimeLastUpdateUnix > 0 {
		ts = time.Unix(doc.TimeLastUpdateUnix, 0).UTC()
	}
	quotes := make(map[string]valutatrade.PriceQuote, len(codes))
	for _, code := range codes {
		baseToCode, ok := doc.ConversionRates[code]
		if !ok || baseToCode <= 0 {
			continue
		}
		// The document is base → code; the cache wants code → base.
		rate := decimal.NewFromInt(1).Div(decimal.NewFromFloat(baseToCode))
		quotes[code] = valutatrade.PriceQuote{Rate: rate, Timestamp: ts}
	}
	return quotes, nil
}

func (s *Source) latest(ctx context.Context) (*latestResponse, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", s.baseURL, s.apiKey, s.base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var doc latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}
	if doc.Result != "success" {
		return nil, fmt.Errorf("api error: %s", doc.ErrorType)
	}
	return &doc, nil
}
