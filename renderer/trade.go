package renderer

import (
	"fmt"

	valutatrade "github.com/valutatrade/hub"
)

// Trade renders a trade record to a one-line confirmation.
func Trade(t valutatrade.TradeRecord) string {
	switch t.Action {
	case valutatrade.ActionBuy:
		return fmt.Sprintf("Bought %s %s for %s %s at rate %s", t.Amount, t.Currency, t.CounterAmount, t.CounterCurrency, t.Rate)
	case valutatrade.ActionSell:
		return fmt.Sprintf("Sold %s %s for %s %s at rate %s", t.Amount, t.Currency, t.CounterAmount, t.CounterCurrency, t.Rate)
	case valutatrade.ActionDeposit:
		return fmt.Sprintf("Deposited %s %s", t.Amount, t.Currency)
	default:
		return fmt.Sprintf("%s %s %s", t.Action, t.Amount, t.Currency)
	}
}
