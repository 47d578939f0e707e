package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/valutatrade/hub/renderer"
)

type rateCmd struct {
	from string
	to   string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show the rate between two currencies" }
func (*rateCmd) Usage() string {
	return `hub rate -from <code> [-to <code>]

  Resolves the conversion rate, triangulating through the base currency
  when no direct quote is cached. -to defaults to the base currency.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Currency to convert from.")
	f.StringVar(&c.to, "to", "", "Currency to convert to, base currency by default.")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	to := c.to
	if to == "" {
		to = a.cfg.BaseCurrency
	}
	conv, err := a.resolver.Rate(c.from, to)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderRate(conv))
	return subcommands.ExitSuccess
}
