package valutatrade

import (
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// sortedKeys returns the map's keys in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

// Holding is one currency position in a portfolio.
type Holding struct {
	Currency string
	Amount   decimal.Decimal
}

// Portfolio holds a user's balances by currency code.
//
// All mutations that touch two balances happen under one lock, so a trade
// either moves both legs or neither.
type Portfolio struct {
	UserID string

	mu       sync.RWMutex
	balances map[string]decimal.Decimal
}

// NewPortfolio returns an empty portfolio for the user.
func NewPortfolio(userID string) *Portfolio {
	return &Portfolio{UserID: userID, balances: make(map[string]decimal.Decimal)}
}

// Balance returns the held amount of a currency, zero when absent.
func (p *Portfolio) Balance(code string) decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.balances[code]
}

// Holdings returns all non-zero positions sorted by currency code.
func (p *Portfolio) Holdings() []Holding {
	p.mu.RLock()
	defer p.mu.RUnlock()
	holdings := make([]Holding, 0, len(p.balances))
	for _, code := range sortedKeys(p.balances) {
		amount := p.balances[code]
		if amount.IsZero() {
			continue
		}
		holdings = append(holdings, Holding{Currency: code, Amount: amount})
	}
	return holdings
}

// credit adds amount to one balance.
func (p *Portfolio) credit(code string, amount decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balances[code] = p.balances[code].Add(amount)
}

// exchange debits one balance and credits another atomically. It fails
// without touching either balance when the debit side cannot cover.
func (p *Portfolio) exchange(debitCode string, debit decimal.Decimal, creditCode string, credit decimal.Decimal, insufficient func(available decimal.Decimal) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	available := p.balances[debitCode]
	if available.LessThan(debit) {
		return insufficient(available)
	}
	p.balances[debitCode] = available.Sub(debit)
	p.balances[creditCode] = p.balances[creditCode].Add(credit)
	return nil
}

// setBalance overwrites one balance, used when loading persisted state.
func (p *Portfolio) setBalance(code string, amount decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balances[code] = amount
}
