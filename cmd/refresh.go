package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/google/subcommands"

	valutatrade "github.com/valutatrade/hub"
	"github.com/valutatrade/hub/renderer"
)

type refreshCmd struct {
	source string
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch fresh rates from the quote sources" }
func (*refreshCmd) Usage() string {
	return `hub refresh [-source <name>]

  Fetches the quote sources once and updates the rate cache. Sources fail
  independently; whatever succeeded is kept. With -source only the named
  source is fetched.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Refresh only this source, all sources by default.")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	updater := a.updater()
	if c.source != "" && !slices.Contains(updater.Sources(), c.source) {
		return fail(fmt.Errorf("unknown source %q, have %s", c.source, strings.Join(updater.Sources(), ", ")))
	}
	report := updater.Refresh(ctx, c.source)
	if err := a.store.SaveRates(a.cache); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderRefresh(&report))
	return subcommands.ExitSuccess
}

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh rates on a schedule until interrupted" }
func (*watchCmd) Usage() string {
	return `hub watch

  Runs the refresh loop every REFRESH_INTERVAL_SECONDS, persisting the
  cache after each run. Stop with Ctrl-C.
`
}

func (*watchCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := valutatrade.NewScheduler(a.updater(), a.cfg.RefreshInterval, func(report valutatrade.RefreshReport) {
		if err := a.store.SaveRates(a.cache); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Printf("%s: %d updated, %d failed, %d skipped\n",
			report.Start.Format("15:04:05"), report.Updated, report.Failed, report.Skipped)
	})
	scheduler.Start(ctx)
	fmt.Printf("Watching rates every %s, Ctrl-C to stop.\n", a.cfg.RefreshInterval)
	<-ctx.Done()
	scheduler.Stop()
	return subcommands.ExitSuccess
}
