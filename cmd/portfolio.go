package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/renderer"
)

type portfolioCmd struct {
	to string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show holdings valued in a currency" }
func (*portfolioCmd) Usage() string {
	return `hub portfolio [-to <code>]

  Shows every holding of the logged-in user with its value in the chosen
  currency, base currency by default. Holdings with no conversion route stay
  listed with the reason; the total sums the rest.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "", "Currency to value the portfolio in, base currency by default.")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	_, p, _, err := a.currentUser()
	if err != nil {
		return fail(err)
	}
	target := c.to
	if target == "" {
		target = a.cfg.BaseCurrency
	}
	v, err := valutatrade.Value(p, a.resolver, target)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderValuation(&v))
	return subcommands.ExitSuccess
}
