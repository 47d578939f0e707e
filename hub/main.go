package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/cmd"
)

func main() {
	completion().Complete("hub")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the CLI for shell completion.
func completion() *complete.Command {
	codes := predict.Set(valutatrade.SupportedCodes())
	tradeFlags := map[string]complete.Predictor{
		"c":      codes,
		"amount": predict.Something,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"register":   {Flags: map[string]complete.Predictor{"u": predict.Something, "p": predict.Something}},
			"login":      {Flags: map[string]complete.Predictor{"u": predict.Something, "p": predict.Something}},
			"logout":     {},
			"deposit":    {Flags: tradeFlags},
			"buy":        {Flags: tradeFlags},
			"sell":       {Flags: tradeFlags},
			"rate":       {Flags: map[string]complete.Predictor{"from": codes, "to": codes}},
			"portfolio":  {Flags: map[string]complete.Predictor{"to": codes}},
			"refresh":    {Flags: map[string]complete.Predictor{"source": predict.Set{"coingecko", "exchangerate-api"}}},
			"watch":      {},
			"trades":     {Flags: map[string]complete.Predictor{"tail": predict.Something}},
			"currencies": {},
			"topic":      {Args: predict.Set{"getting-started", "conversion", "staleness", "trading", "readme"}},
		},
	}
}
