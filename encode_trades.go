package valutatrade

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// tradeJSON is the journal line shape for a TradeRecord.
type tradeJSON struct {
	ID              string          `json:"id"`
	User            string          `json:"user"`
	Action          string          `json:"action"`
	Currency        string          `json:"currency"`
	Amount          decimal.Decimal `json:"amount"`
	CounterCurrency string          `json:"counter_currency"`
	CounterAmount   decimal.Decimal `json:"counter_amount"`
	Rate            decimal.Decimal `json:"rate"`
	Stale           bool            `json:"stale,omitempty"`
	Timestamp       string          `json:"timestamp"`
}

// EncodeTrade appends one trade as a single JSON line. The journal is
// append-only; lines are never rewritten.
func EncodeTrade(w io.Writer, t TradeRecord) error {
	obj := &jsonObjectWriter{}
	obj.Append("id", t.ID)
	obj.Append("user", t.User)
	obj.Append("action", t.Action)
	obj.Append("currency", t.Currency)
	obj.Append("amount", t.Amount)
	obj.Append("counter_currency", t.CounterCurrency)
	obj.Append("counter_amount", t.CounterAmount)
	obj.Append("rate", t.Rate)
	if t.Stale {
		obj.Append("stale", t.Stale)
	}
	obj.Append("timestamp", t.Timestamp.UTC().Format(time.RFC3339))
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// DecodeTrades reads a journal back into records, in file order.
func DecodeTrades(r io.Reader) ([]TradeRecord, error) {
	dec := json.NewDecoder(r)
	var trades []TradeRecord
	for dec.More() {
		var line tradeJSON
		if err := dec.Decode(&line); err != nil {
			return nil, fmt.Errorf("invalid trade journal line %d: %w", len(trades)+1, err)
		}
		ts, err := time.Parse(time.RFC3339, line.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid trade timestamp %q: %w", line.Timestamp, err)
		}
		trades = append(trades, TradeRecord{
			ID:              line.ID,
			User:            line.User,
			Action:          line.Action,
			Currency:        line.Currency,
			Amount:          line.Amount,
			CounterCurrency: line.CounterCurrency,
			CounterAmount:   line.CounterAmount,
			Rate:            line.Rate,
			Stale:           line.Stale,
			Timestamp:       ts,
		})
	}
	return trades, nil
}
