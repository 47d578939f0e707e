package valutatrade

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyNotFoundError reports a code absent from the static catalog.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// NoRouteError reports that no conversion path exists between two currencies,
// naming the cached pair that would have completed the route.
type NoRouteError struct {
	From, To string
	Missing  string // the missing leg's pair key, e.g. "EUR_USD"
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no route from %s to %s: missing quote for %s", e.From, e.To, e.Missing)
}

// InsufficientFundsError reports a buy whose cost exceeds the base-currency
// balance. The portfolio is left untouched.
type InsufficientFundsError struct {
	Currency  string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s %s, required %s %s",
		e.Available, e.Currency, e.Required, e.Currency)
}

// InsufficientHoldingsError reports a sell larger than the holding being sold.
// The portfolio is left untouched.
type InsufficientHoldingsError struct {
	Currency  string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings: available %s %s, required %s %s",
		e.Available, e.Currency, e.Required, e.Currency)
}

// AmountError reports a zero or negative trade amount.
type AmountError struct {
	Amount decimal.Decimal
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("amount must be positive, got %s", e.Amount)
}

// TradePairError reports a trade whose currency is the base currency itself.
type TradePairError struct {
	Currency string
}

func (e *TradePairError) Error() string {
	return fmt.Sprintf("cannot trade %s against itself", e.Currency)
}

// SourceError reports one provider failing for one refresh run. It is scoped
// to that source: other sources' updates proceed.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// PersistenceError reports a failed load or save. A failed load means "no
// data yet", never "all values are zero": callers get an empty store and a
// forced refresh, not fabricated rates.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
