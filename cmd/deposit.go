package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/valutatrade/hub/renderer"
)

type depositCmd struct {
	c      string
	amount string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "credit a currency to the portfolio" }
func (*depositCmd) Usage() string {
	return `hub deposit [-c <code>] -amount <n>

  Credits the logged-in portfolio with an amount of the given currency,
  base currency by default.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.c, "c", "", "Currency to deposit, base currency by default.")
	f.StringVar(&c.amount, "amount", "", "Amount to deposit.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return fail(fmt.Errorf("invalid amount %q: %w", c.amount, err))
	}
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	_, p, save, err := a.currentUser()
	if err != nil {
		return fail(err)
	}
	code := c.c
	if code == "" {
		code = a.cfg.BaseCurrency
	}
	rec, err := a.ledger.Deposit(p, code, amount)
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
	return subcommands.ExitSuccess
}
