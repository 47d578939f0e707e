// Package coingecko fetches crypto rates from the CoinGecko simple price
// API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	valutatrade "github.com/valutatrade/hub"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps currency codes to CoinGecko coin identifiers. Only mapped
// codes can be fetched.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"BNB":  "binancecoin",
	"XRP":  "ripple",
	"USDT": "tether",
	"ADA":  "cardano",
	"DOGE": "dogecoin",
}

// Source is a crypto quote source backed by CoinGecko.
type Source struct {
	baseURL string
	vs      string // quote currency, lowercased in requests
	client  *http.Client
	now     func() time.Time
}

// New returns a Source quoting against the given base currency.
func New(base string) *Source {
	return &Source{
		baseURL: defaultBaseURL,
		vs:      strings.ToLower(base),
		client:  &http.Client{},
		now:     time.Now,
	}
}

// NewWithBaseURL overrides the API endpoint, for tests.
func NewWithBaseURL(base, baseURL string) *Source {
	s := New(base)
	s.baseURL = baseURL
	return s
}

// Name implements valutatrade.QuoteSource.
func (s *Source) Name() string { return "coingecko" }

// Codes returns the crypto codes this source can quote, catalog order.
func (s *Source) Codes() []string {
	var codes []string
	for _, code := range valutatrade.CryptoCodes() {
		if _, ok := coinIDs[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// Fetch retrieves simple prices for the given codes in one request.
// Codes CoinGecko did not price are simply absent from the result.
func (s *Source) Fetch(ctx context.Context, codes []string) (map[string]valutatrade.PriceQuote, error) {
	ids := make([]string, 0, len(codes))
	byID := make(map[string]string, len(codes))
	for _, code := range codes {
		id, ok := coinIDs[code]
		if !ok {
			continue
		}
		ids = append(ids, id)
		byID[id] = code
	}
	if len(ids) == 0 {
		return map[string]valutatrade.PriceQuote{}, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", s.vs)
	doc, err := s.get(ctx, "/simple/price?"+q.Encode())
	if err != nil {
		return nil, &valutatrade.SourceError{Source: s.Name(), Err: err}
	}

	ts := s.now().UTC()
	quotes := make(map[string]valutatrade.PriceQuote, len(ids))
	for id, code := range byID {
		raw, err := jsonpath.Get(fmt.Sprintf("$[%q][%q]", id, s.vs), doc)
		if err != nil {
			continue
		}
		price, ok := raw.(float64)
		if !ok || price <= 0 {
			continue
		}
		quotes[code] = valutatrade.PriceQuote{Rate: decimal.NewFromFloat(price), Timestamp: ts}
	}
	return quotes, nil
}

// get fetches one API path and parses the body for jsonpath navigation.
func (s *Source) get(ctx context.Context, path string) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
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
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}
	return doc, nil
}
