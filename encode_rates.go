package valutatrade

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const lastRefreshKey = "last_refresh"

// snapshotEntry is the persisted shape of one cached pair.
type snapshotEntry struct {
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DecodeRateCache reads a persisted cache snapshot: a mapping of pair keys
// ("BTC_USD") to {rate, source, updated_at}, plus a top-level "last_refresh"
// timestamp. A corrupt snapshot yields an empty cache, not an error: no data
// yet, so a refresh is needed before the pairs can be served.
func DecodeRateCache(r io.Reader) (*RateCache, error) {
	cache := NewRateCache()

	raw := make(map[string]json.RawMessage)
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		log.Printf("rate cache snapshot is corrupt, starting empty: %v", err)
		return cache, nil
	}

	for key, msg := range raw {
		if key == lastRefreshKey {
			var t time.Time
			if err := json.Unmarshal(msg, &t); err != nil {
				log.Printf("ignoring malformed %s: %v", lastRefreshKey, err)
				continue
			}
			cache.SetLastRefresh(t)
			continue
		}

		from, to, err := SplitPairKey(key)
		if err != nil {
			log.Printf("ignoring snapshot entry %q: %v", key, err)
			continue
		}
		var entry snapshotEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			log.Printf("ignoring snapshot entry %q: %v", key, err)
			continue
		}
		quote := Quote{
			From:      from,
			To:        to,
			Rate:      entry.Rate,
			Source:    entry.Source,
			Timestamp: entry.UpdatedAt.UTC(),
		}
		// Put enforces rate > 0, so a tampered snapshot cannot smuggle in
		// a zero or negative rate.
		if !cache.Put(quote) {
			log.Printf("ignoring snapshot entry %q: non-positive rate %s", key, entry.Rate)
		}
	}
	return cache, nil
}

// EncodeRateCache writes the cache snapshot in a canonical form: pair keys in
// sorted order, last_refresh last. Timestamps are ISO-8601 UTC.
func EncodeRateCache(w io.Writer, cache *RateCache) error {
	var obj jsonObjectWriter
	for _, q := range cache.All() {
		var entry jsonObjectWriter
		entry.Append("rate", q.Rate)
		entry.Append("source", q.Source)
		entry.Append("updated_at", q.Timestamp.UTC().Format(time.RFC3339))
		obj.Append(q.Pair(), &entry)
	}
	if t := cache.LastRefresh(); !t.IsZero() {
		obj.Append(lastRefreshKey, t.UTC().Format(time.RFC3339))
	}

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode rate cache: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	return nil
}
