package valutatrade

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// testLedger returns a ledger over USD with BTC at 100000 and EUR at 1.1.
func testLedger(t *testing.T) *Ledger {
	t.Helper()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	r := testResolver(t, now, time.Hour,
		Quote{From: "BTC", To: "USD", Rate: decimal.NewFromInt(100000), Source: "t", Timestamp: now},
		Quote{From: "EUR", To: "USD", Rate: decimal.RequireFromString("1.1"), Source: "t", Timestamp: now},
	)
	l := NewLedger(r)
	l.now = func() time.Time { return now }
	return l
}

func fundedPortfolio(t *testing.T, l *Ledger, usd string) *Portfolio {
	t.Helper()
	p := NewPortfolio("alice")
	if _, err := l.Deposit(p, "USD", decimal.RequireFromString(usd)); err != nil {
		t.Fatalf("Deposit(USD, %s) = %v", usd, err)
	}
	return p
}

func TestLedgerDeposit(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "10000")
	if got := p.Balance("USD"); !got.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("USD balance = %s, want 10000", got)
	}

	if _, err := l.Deposit(p, "USD", decimal.Zero); err == nil {
		t.Error("Deposit(0) should fail")
	}
	if _, err := l.Deposit(p, "USD", decimal.NewFromInt(-5)); err == nil {
		t.Error("Deposit(-5) should fail")
	}
}

// Deposits take any catalog currency, not just the base, and need no rate.
func TestLedgerDepositAnyCurrency(t *testing.T) {
	l := testLedger(t)
	p := NewPortfolio("alice")

	rec, err := l.Deposit(p, "btc", decimal.RequireFromString("0.5"))
	if err != nil {
		t.Fatalf("Deposit(btc, 0.5) = %v", err)
	}
	if rec.Currency != "BTC" || rec.Action != ActionDeposit {
		t.Errorf("record = %+v, want BTC DEPOSIT", rec)
	}
	if got := p.Balance("BTC"); !got.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("BTC balance = %s, want 0.5", got)
	}
	// SOL has no cached rate; a deposit still lands.
	if _, err := l.Deposit(p, "SOL", decimal.NewFromInt(3)); err != nil {
		t.Fatalf("Deposit(SOL, 3) = %v", err)
	}
	if got := p.Balance("SOL"); !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("SOL balance = %s, want 3", got)
	}

	var notFound *CurrencyNotFoundError
	if _, err := l.Deposit(p, "XYZ", decimal.NewFromInt(1)); !errors.As(err, &notFound) {
		t.Errorf("Deposit(XYZ) = %v, want CurrencyNotFoundError", err)
	}
}

func TestLedgerBuy(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "10000")

	rec, err := l.Buy(p, "BTC", decimal.RequireFromString("0.05"))
	if err != nil {
		t.Fatalf("Buy(BTC, 0.05) = %v", err)
	}
	if !rec.CounterAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("cost = %s, want 5000", rec.CounterAmount)
	}
	if got := p.Balance("USD"); !got.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("USD balance = %s, want 5000", got)
	}
	if got := p.Balance("BTC"); !got.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("BTC balance = %s, want 0.05", got)
	}
	if rec.Action != ActionBuy || rec.User != "alice" || rec.ID == "" {
		t.Errorf("record = %+v, want filled BUY for alice", rec)
	}
}

// A rejected buy must leave both balances exactly as they were.
func TestLedgerBuyInsufficientFunds(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "1000")

	_, err := l.Buy(p, "BTC", decimal.RequireFromString("0.05"))
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("Buy = %v, want InsufficientFundsError", err)
	}
	if !funds.Available.Equal(decimal.NewFromInt(1000)) || !funds.Required.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("error = %+v, want available 1000 required 5000", funds)
	}
	if got := p.Balance("USD"); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("USD balance = %s, want untouched 1000", got)
	}
	if got := p.Balance("BTC"); !got.IsZero() {
		t.Errorf("BTC balance = %s, want untouched 0", got)
	}
}

func TestLedgerSellInsufficientHoldings(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "10000")

	_, err := l.Sell(p, "BTC", decimal.RequireFromString("0.01"))
	var holdings *InsufficientHoldingsError
	if !errors.As(err, &holdings) {
		t.Fatalf("Sell = %v, want InsufficientHoldingsError", err)
	}
	if got := p.Balance("USD"); !got.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("USD balance = %s, want untouched 10000", got)
	}
}

// Buying then selling the same amount at the same rate restores both
// balances exactly.
func TestLedgerBuySellRoundTrip(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "10000")

	amount := decimal.RequireFromString("0.05")
	if _, err := l.Buy(p, "BTC", amount); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Sell(p, "BTC", amount); err != nil {
		t.Fatal(err)
	}
	if got := p.Balance("USD"); !got.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("USD balance = %s, want restored 10000", got)
	}
	if got := p.Balance("BTC"); !got.IsZero() {
		t.Errorf("BTC balance = %s, want restored 0", got)
	}
}

func TestLedgerRejectsBadTrades(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "10000")

	testCases := []struct {
		name   string
		code   string
		amount string
	}{
		{"unknown currency", "XYZ", "1"},
		{"base against itself", "USD", "1"},
		{"zero amount", "BTC", "0"},
		{"negative amount", "BTC", "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.Buy(p, tc.code, decimal.RequireFromString(tc.amount)); err == nil {
				t.Errorf("Buy(%s, %s) should fail", tc.code, tc.amount)
			}
		})
	}
}

func TestLedgerStaleRateFlagsTrade(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	r := testResolver(t, now, time.Minute,
		Quote{From: "BTC", To: "USD", Rate: decimal.NewFromInt(100000), Source: "t", Timestamp: now.Add(-time.Hour)},
	)
	l := NewLedger(r)
	l.now = func() time.Time { return now }
	p := fundedPortfolio(t, l, "10000")

	rec, err := l.Buy(p, "BTC", decimal.RequireFromString("0.05"))
	if err != nil {
		t.Fatalf("stale rate must not block the trade: %v", err)
	}
	if !rec.Stale {
		t.Error("record not flagged stale")
	}
}

func TestLedgerNoRouteBlocksTrade(t *testing.T) {
	l := testLedger(t)
	p := fundedPortfolio(t, l, "10000")

	_, err := l.Buy(p, "SOL", decimal.NewFromInt(1))
	var noRoute *NoRouteError
	if !errors.As(err, &noRoute) {
		t.Fatalf("Buy(SOL) = %v, want NoRouteError", err)
	}
	if got := p.Balance("USD"); !got.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("USD balance = %s, want untouched 10000", got)
	}
}
