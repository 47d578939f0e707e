package valutatrade

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFileStoreMissingFilesAreEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cache, err := store.LoadRates()
	if err != nil || cache.Len() != 0 {
		t.Errorf("LoadRates() = %d quotes, %v; want empty, nil", cache.Len(), err)
	}
	portfolios, err := store.LoadPortfolios()
	if err != nil || len(portfolios) != 0 {
		t.Errorf("LoadPortfolios() = %d, %v; want empty, nil", len(portfolios), err)
	}
	users, err := store.LoadUsers()
	if err != nil || len(users) != 0 {
		t.Errorf("LoadUsers() = %d, %v; want empty, nil", len(users), err)
	}
	trades, err := store.LoadTrades()
	if err != nil || len(trades) != 0 {
		t.Errorf("LoadTrades() = %d, %v; want empty, nil", len(trades), err)
	}
	if got := store.Session(); got != "" {
		t.Errorf("Session() = %q, want empty", got)
	}
}

func TestFileStoreRatesRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ts := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	cache := NewRateCache()
	cache.Put(Quote{From: "BTC", To: "USD", Rate: decimal.RequireFromString("100000.37"), Source: "coingecko", Timestamp: ts})
	cache.Put(Quote{From: "EUR", To: "USD", Rate: decimal.RequireFromString("1.0973"), Source: "exchangerate-api", Timestamp: ts})
	cache.SetLastRefresh(ts)

	if err := store.SaveRates(cache); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.LoadRates()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d quotes, want 2", loaded.Len())
	}
	q, ok := loaded.Get("BTC", "USD")
	if !ok || !q.Rate.Equal(decimal.RequireFromString("100000.37")) || q.Source != "coingecko" {
		t.Errorf("BTC_USD = %+v, %v", q, ok)
	}
	if !q.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %s, want %s", q.Timestamp, ts)
	}
	if !loaded.LastRefresh().Equal(ts) {
		t.Errorf("last refresh = %s, want %s", loaded.LastRefresh(), ts)
	}
}

// A corrupt snapshot must read as empty state, not as an error and not as
// zero rates.
func TestFileStoreCorruptRates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rates.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	cache, err := store.LoadRates()
	if err != nil {
		t.Fatalf("LoadRates() on corrupt file = %v, want empty cache", err)
	}
	if cache.Len() != 0 {
		t.Errorf("corrupt snapshot produced %d quotes", cache.Len())
	}
}

func TestFileStorePortfoliosRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	alice := NewPortfolio("alice")
	alice.setBalance("USD", decimal.NewFromInt(5000))
	alice.setBalance("BTC", decimal.RequireFromString("0.05"))
	portfolios := map[string]*Portfolio{"alice": alice}

	if err := store.SavePortfolios(portfolios); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.LoadPortfolios()
	if err != nil {
		t.Fatal(err)
	}
	p, ok := loaded["alice"]
	if !ok {
		t.Fatal("alice missing after reload")
	}
	if !p.Balance("BTC").Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("BTC balance = %s, want 0.05", p.Balance("BTC"))
	}
	if !p.Balance("USD").Equal(decimal.NewFromInt(5000)) {
		t.Errorf("USD balance = %s, want 5000", p.Balance("USD"))
	}
}

func TestFileStoreTradeJournalAppends(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ts := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	first := TradeRecord{
		ID: "a", User: "alice", Action: ActionBuy,
		Currency: "BTC", Amount: decimal.RequireFromString("0.05"),
		CounterCurrency: "USD", CounterAmount: decimal.NewFromInt(5000),
		Rate: decimal.NewFromInt(100000), Timestamp: ts,
	}
	second := first
	second.ID, second.Action, second.Stale = "b", ActionSell, true
	second.Timestamp = ts.Add(time.Minute)

	if err := store.AppendTrade(first); err != nil {
		t.Fatal(err)
	}
	if err := store.AppendTrade(second); err != nil {
		t.Fatal(err)
	}

	trades, err := store.LoadTrades()
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 2 {
		t.Fatalf("journal holds %d trades, want 2", len(trades))
	}
	if trades[0].ID != "a" || trades[1].ID != "b" {
		t.Errorf("journal order = %s, %s; want a, b", trades[0].ID, trades[1].ID)
	}
	if !trades[1].Stale {
		t.Error("stale flag lost in journal round trip")
	}
	if !trades[0].Rate.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("rate = %s, want 100000", trades[0].Rate)
	}
}

func TestFileStoreSession(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSession("alice"); err != nil {
		t.Fatal(err)
	}
	if got := store.Session(); got != "alice" {
		t.Errorf("Session() = %q, want alice", got)
	}
	if err := store.ClearSession(); err != nil {
		t.Fatal(err)
	}
	if got := store.Session(); got != "" {
		t.Errorf("Session() after clear = %q, want empty", got)
	}
	// Clearing twice is fine.
	if err := store.ClearSession(); err != nil {
		t.Errorf("second ClearSession() = %v", err)
	}
}

// The snapshot write must not leave temp files behind.
func TestFileStoreAtomicWriteCleansUp(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRates(NewRateCache()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
}
