// Package cmd implements the CLI application to manage currency portfolios.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/audit"
	"github.com/valutatrade/hub/coingecko"
	"github.com/valutatrade/hub/config"
	"github.com/valutatrade/hub/exchangerate"
)

// Commands lists every subcommand of the hub. A main package registers them
// all and executes the user-selected one.
var Commands = []subcommands.Command{
	&registerCmd{},
	&loginCmd{},
	&logoutCmd{},
	&depositCmd{},
	&buyCmd{},
	&sellCmd{},
	&rateCmd{},
	&portfolioCmd{},
	&refreshCmd{},
	&watchCmd{},
	&tradesCmd{},
	&currenciesCmd{},
	&topicCmd{},
}

// app bundles everything a command needs: config, persistence, the rate
// cache and the trading engine, all loaded from the data directory.
type app struct {
	cfg      *config.Config
	store    *valutatrade.FileStore
	cache    *valutatrade.RateCache
	resolver *valutatrade.Resolver
	ledger   *valutatrade.Ledger
}

// openApp loads configuration and state. CLI commands are short-lived, so
// everything is read fresh on every invocation.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := valutatrade.LookupCurrency(cfg.BaseCurrency); err != nil {
		return nil, fmt.Errorf("invalid BASE_CURRENCY: %w", err)
	}
	if err := audit.Init(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("cannot open audit log: %w", err)
	}
	store, err := valutatrade.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	cache, err := store.LoadRates()
	if err != nil {
		return nil, err
	}
	resolver := valutatrade.NewResolver(cache, cfg.BaseCurrency, cfg.CacheTTL)
	return &app{
		cfg:      cfg,
		store:    store,
		cache:    cache,
		resolver: resolver,
		ledger:   valutatrade.NewLedger(resolver),
	}, nil
}

// updater builds the refresh pipeline over the configured quote sources.
// Without an API key the fiat source is left out and only crypto refreshes.
func (a *app) updater() *valutatrade.Updater {
	sources := []valutatrade.QuoteSource{coingecko.New(a.cfg.BaseCurrency)}
	if a.cfg.ExchangeRateKey != "" {
		sources = append(sources, exchangerate.New(a.cfg.ExchangeRateKey, a.cfg.BaseCurrency))
	} else {
		fmt.Fprintln(os.Stderr, "Warning: EXCHANGERATE_API_KEY not set, fiat rates will not refresh.")
	}
	return valutatrade.NewUpdater(a.cache, a.cfg.BaseCurrency, a.cfg.SourceTimeout, sources...)
}

// currentUser resolves the logged-in user and their portfolio. The returned
// save function persists all portfolios back to disk.
func (a *app) currentUser() (string, *valutatrade.Portfolio, func() error, error) {
	username := a.store.Session()
	if username == "" {
		return "", nil, nil, fmt.Errorf("not logged in, run `hub login` first")
	}
	portfolios, err := a.store.LoadPortfolios()
	if err != nil {
		return "", nil, nil, err
	}
	p, ok := portfolios[username]
	if !ok {
		p = valutatrade.NewPortfolio(username)
		portfolios[username] = p
	}
	save := func() error { return a.store.SavePortfolios(portfolios) }
	return username, p, save, nil
}

// fail prints an error and maps it to a failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
