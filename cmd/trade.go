package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/renderer"
)

type buyCmd struct {
	currency string
	amount   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a currency against the base balance" }
func (*buyCmd) Usage() string {
	return `hub buy -c <code> -amount <n>

  Buys n of the currency; the cost at the current rate is debited from the
  base balance. Fails without touching any balance when funds are short.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Currency code to buy.")
	f.StringVar(&c.amount, "amount", "", "Amount to buy.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(valutatrade.ActionBuy, c.currency, c.amount)
}

type sellCmd struct {
	currency string
	amount   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a currency for base proceeds" }
func (*sellCmd) Usage() string {
	return `hub sell -c <code> -amount <n>

  Sells n of the currency; the proceeds at the current rate are credited to
  the base balance. Fails without touching any balance when the holding is
  short.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Currency code to sell.")
	f.StringVar(&c.amount, "amount", "", "Amount to sell.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(valutatrade.ActionSell, c.currency, c.amount)
}

func executeTrade(action, currency, rawAmount string) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return fail(fmt.Errorf("invalid amount %q: %w", rawAmount, err))
	}
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	_, p, save, err := a.currentUser()
	if err != nil {
		return fail(err)
	}

	var rec valutatrade.TradeRecord
	switch action {
	case valutatrade.ActionBuy:
		rec, err = a.ledger.Buy(p, currency, amount)
	case valutatrade.ActionSell:
		rec, err = a.ledger.Sell(p, currency, amount)
	}
	if err != nil {
		return fail(err)
	}
	if err := save(); err != nil {
		return fail(err)
	}
	if err := a.store.AppendTrade(rec); err != nil {
		return fail(err)
	}
	fmt.Println(renderer.Trade(rec))
	if rec.Stale {
		fmt.Println("Warning: executed on a stale rate, run `hub refresh` for fresh quotes.")
	}
	return subcommands.ExitSuccess
}
