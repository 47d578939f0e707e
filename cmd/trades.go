package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/renderer"
)

type tradesCmd struct {
	tail int
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "show the trade history" }
func (*tradesCmd) Usage() string {
	return `hub trades [-tail <n>]

  Shows the logged-in user's trades in journal order.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "tail", 0, "Show only the last N trades.")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	username, _, _, err := a.currentUser()
	if err != nil {
		return fail(err)
	}
	all, err := a.store.LoadTrades()
	if err != nil {
		return fail(err)
	}
	var trades []valutatrade.TradeRecord
	for _, t := range all {
		if t.User == username {
			trades = append(trades, t)
		}
	}
	if c.tail > 0 && len(trades) > c.tail {
		trades = trades[len(trades)-c.tail:]
	}
	printMarkdown(renderer.RenderTrades(username, trades))
	return subcommands.ExitSuccess
}
