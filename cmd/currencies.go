package cmd

import (
	"context"
	"flag"
	"slices"
	"strings"

	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/renderer"
)

type currenciesCmd struct{}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "list the supported currencies" }
func (*currenciesCmd) Usage() string {
	return `hub currencies

  Lists every currency the hub can hold and trade.
`
}

func (*currenciesCmd) SetFlags(f *flag.FlagSet) {}

func (c *currenciesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	currencies := slices.Collect(valutatrade.AllCurrencies())
	slices.SortFunc(currencies, func(a, b valutatrade.Currency) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return strings.Compare(a.Code, b.Code)
	})
	printMarkdown(renderer.RenderCurrencies(currencies))
	return subcommands.ExitSuccess
}
