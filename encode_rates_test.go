package valutatrade

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEncodeRateCacheCanonical(t *testing.T) {
	ts := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	cache := NewRateCache()
	cache.Put(Quote{From: "EUR", To: "USD", Rate: decimal.RequireFromString("1.0973"), Source: "exchangerate-api", Timestamp: ts})
	cache.Put(Quote{From: "BTC", To: "USD", Rate: decimal.RequireFromString("100000.37"), Source: "coingecko", Timestamp: ts})
	cache.SetLastRefresh(ts)

	var buf bytes.Buffer
	if err := EncodeRateCache(&buf, cache); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// Pairs in sorted order, last_refresh at the end.
	btc := strings.Index(out, "BTC_USD")
	eur := strings.Index(out, "EUR_USD")
	last := strings.Index(out, "last_refresh")
	if btc == -1 || eur == -1 || last == -1 {
		t.Fatalf("snapshot missing keys: %s", out)
	}
	if !(btc < eur && eur < last) {
		t.Errorf("snapshot not canonical: %s", out)
	}
	// Rates are bare numbers, not strings.
	if !strings.Contains(out, `"rate":100000.37`) {
		t.Errorf("rate not a bare number: %s", out)
	}
	if !strings.Contains(out, `"updated_at":"2025-10-01T12:00:00Z"`) {
		t.Errorf("timestamp not ISO-8601 UTC: %s", out)
	}

	loaded, err := DecodeRateCache(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 || !loaded.LastRefresh().Equal(ts) {
		t.Errorf("round trip lost data: %d pairs, last refresh %s", loaded.Len(), loaded.LastRefresh())
	}
}

func TestDecodeRateCacheTolerates(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantPairs int
	}{
		{"corrupt file", `{not json`, 0},
		{"empty object", `{}`, 0},
		{
			"malformed key skipped",
			`{"garbage": {"rate": 1, "source": "x", "updated_at": "2025-10-01T12:00:00Z"},
			  "BTC_USD": {"rate": 100000, "source": "x", "updated_at": "2025-10-01T12:00:00Z"}}`,
			1,
		},
		{
			"non-positive rate skipped",
			`{"BTC_USD": {"rate": 0, "source": "x", "updated_at": "2025-10-01T12:00:00Z"},
			  "EUR_USD": {"rate": 1.1, "source": "x", "updated_at": "2025-10-01T12:00:00Z"}}`,
			1,
		},
		{
			"malformed entry skipped",
			`{"BTC_USD": "what", "EUR_USD": {"rate": 1.1, "source": "x", "updated_at": "2025-10-01T12:00:00Z"}}`,
			1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cache, err := DecodeRateCache(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("DecodeRateCache() = %v, want lenient decode", err)
			}
			if cache.Len() != tc.wantPairs {
				t.Errorf("decoded %d pairs, want %d", cache.Len(), tc.wantPairs)
			}
		})
	}
}
