package valutatrade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/valutatrade/hub/audit"
)

// Trade actions as recorded in the journal.
const (
	ActionBuy     = "BUY"
	ActionSell    = "SELL"
	ActionDeposit = "DEPOSIT"
)

// TradeRecord is one immutable journal line. CounterCurrency is the base
// currency the trade settled against; Rate is the base-denominated rate the
// trade executed at. Stale marks trades executed on an expired rate.
type TradeRecord struct {
	ID              string
	User            string
	Action          string
	Currency        string
	Amount          decimal.Decimal
	CounterCurrency string
	CounterAmount   decimal.Decimal
	Rate            decimal.Decimal
	Stale           bool
	Timestamp       time.Time
}

// Ledger executes trades on portfolios at resolver rates and emits journal
// records. It never persists anything itself.
type Ledger struct {
	resolver *Resolver
	now      func() time.Time
}

// NewLedger builds a Ledger pricing trades through the resolver.
func NewLedger(resolver *Resolver) *Ledger {
	return &Ledger{resolver: resolver, now: time.Now}
}

// Deposit credits the portfolio with an amount of any catalog currency.
// No rate is involved: the amount lands on the balance as-is.
func (l *Ledger) Deposit(p *Portfolio, code string, amount decimal.Decimal) (TradeRecord, error) {
	cur, err := LookupCurrency(code)
	if err != nil {
		return TradeRecord{}, err
	}
	code = cur.Code
	if !amount.IsPositive() {
		return TradeRecord{}, &AmountError{Amount: amount}
	}
	p.credit(code, amount)
	rec := TradeRecord{
		ID:              uuid.NewString(),
		User:            p.UserID,
		Action:          ActionDeposit,
		Currency:        code,
		Amount:          amount,
		CounterCurrency: code,
		Rate:            one,
		Timestamp:       l.now().UTC(),
	}
	audit.Get().Infow("trade", "user", p.UserID, "action", ActionDeposit, "currency", code, "amount", amount.String())
	return rec, nil
}

// Buy purchases an amount of a currency against the base balance. The cost
// is amount times the currency's base rate; the base balance must cover it.
func (l *Ledger) Buy(p *Portfolio, code string, amount decimal.Decimal) (TradeRecord, error) {
	return l.trade(p, ActionBuy, code, amount)
}

// Sell disposes of an amount of a currency for base proceeds. The holding
// must cover the amount sold.
func (l *Ledger) Sell(p *Portfolio, code string, amount decimal.Decimal) (TradeRecord, error) {
	return l.trade(p, ActionSell, code, amount)
}

func (l *Ledger) trade(p *Portfolio, action, code string, amount decimal.Decimal) (TradeRecord, error) {
	cur, err := LookupCurrency(code)
	if err != nil {
		return TradeRecord{}, err
	}
	code = cur.Code
	base := l.resolver.Pivot()
	if code == base {
		return TradeRecord{}, &TradePairError{Currency: code}
	}
	if !amount.IsPositive() {
		return TradeRecord{}, &AmountError{Amount: amount}
	}

	conv, err := l.resolver.Rate(code, base)
	if err != nil {
		return TradeRecord{}, err
	}
	counter := amount.Mul(conv.Rate)

	switch action {
	case ActionBuy:
		err = p.exchange(base, counter, code, amount, func(available decimal.Decimal) error {
			return &InsufficientFundsError{Currency: base, Available: available, Required: counter}
		})
	case ActionSell:
		err = p.exchange(code, amount, base, counter, func(available decimal.Decimal) error {
			return &InsufficientHoldingsError{Currency: code, Available: available, Required: amount}
		})
	}
	if err != nil {
		return TradeRecord{}, err
	}

	rec := TradeRecord{
		ID:              uuid.NewString(),
		User:            p.UserID,
		Action:          action,
		Currency:        code,
		Amount:          amount,
		CounterCurrency: base,
		CounterAmount:   counter,
		Rate:            conv.Rate,
		Stale:           conv.Stale,
		Timestamp:       l.now().UTC(),
	}
	log := audit.Get()
	log.Infow("trade",
		"id", rec.ID,
		"user", p.UserID,
		"action", action,
		"currency", code,
		"amount", amount.String(),
		"counter", counter.String(),
		"rate", conv.Rate.String(),
		"stale", conv.Stale,
	)
	if conv.Stale {
		log.Warnw("stale_rate", "pair", PairKey(code, base), "user", p.UserID, "action", action)
	}
	return rec, nil
}
