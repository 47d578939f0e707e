package valutatrade

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/valutatrade/hub/audit"
)

// Outcome of one pair during a refresh run.
const (
	StatusUpdated = "updated"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// PairOutcome records what happened to a single pair during a refresh.
type PairOutcome struct {
	Status string
	Source string
	Reason string
}

// RefreshReport summarizes one refresh run across all sources.
type RefreshReport struct {
	Start    time.Time
	Duration time.Duration
	Pairs    map[string]PairOutcome
	Updated  int
	Failed   int
	Skipped  int
}

// Updater refreshes the rate cache from a set of quote sources.
//
// Each source runs in its own goroutine under its own timeout, so one slow
// or broken source never blocks or fails the others. There are no retries
// within a run; the next scheduled run is the retry.
type Updater struct {
	cache   *RateCache
	pivot   string
	sources []QuoteSource
	timeout time.Duration
	now     func() time.Time
}

// NewUpdater builds an Updater over the cache with a per-source fetch timeout.
func NewUpdater(cache *RateCache, pivot string, timeout time.Duration, sources ...QuoteSource) *Updater {
	return &Updater{cache: cache, pivot: pivot, sources: sources, timeout: timeout, now: time.Now}
}

// Sources lists the names of the configured quote sources.
func (u *Updater) Sources() []string {
	names := make([]string, 0, len(u.sources))
	for _, src := range u.sources {
		names = append(names, src.Name())
	}
	return names
}

// Refresh fetches sources concurrently and applies the results to the
// cache. An empty scope runs every source; a source name runs that source
// alone. The cache's last-refresh mark moves to the run's start time only
// if at least one pair updated. Cancellation marks remaining pairs
// skipped, not failed.
func (u *Updater) Refresh(ctx context.Context, scope string) RefreshReport {
	start := u.now()
	report := RefreshReport{Start: start, Pairs: make(map[string]PairOutcome)}

	sources := u.sources
	if scope != "" {
		sources = nil
		for _, src := range u.sources {
			if src.Name() == scope {
				sources = append(sources, src)
			}
		}
	}

	type sourceResult struct {
		source string
		codes  []string
		quotes map[string]PriceQuote
		err    error
	}

	results := make(chan sourceResult, len(sources))
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src QuoteSource) {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, u.timeout)
			defer cancel()
			quotes, err := src.Fetch(fctx, src.Codes())
			results <- sourceResult{source: src.Name(), codes: src.Codes(), quotes: quotes, err: err}
		}(src)
	}
	wg.Wait()
	close(results)

	log := audit.Get()
	for res := range results {
		for _, code := range res.codes {
			if code == u.pivot {
				continue
			}
			key := PairKey(code, u.pivot)
			switch {
			case res.err != nil && errors.Is(res.err, context.Canceled):
				report.Pairs[key] = PairOutcome{Status: StatusSkipped, Source: res.source, Reason: "cancelled"}
				log.Infow("refresh_pair", "pair", key, "source", res.source, "status", StatusSkipped, "reason", "cancelled")
			case res.err != nil:
				report.Pairs[key] = PairOutcome{Status: StatusFailed, Source: res.source, Reason: res.err.Error()}
				log.Warnw("refresh_pair", "pair", key, "source", res.source, "status", StatusFailed, "reason", res.err.Error())
			default:
				pq, ok := res.quotes[code]
				if !ok {
					report.Pairs[key] = PairOutcome{Status: StatusFailed, Source: res.source, Reason: "no quote returned"}
					log.Warnw("refresh_pair", "pair", key, "source", res.source, "status", StatusFailed, "reason", "no quote returned")
					continue
				}
				q := Quote{From: code, To: u.pivot, Rate: pq.Rate, Source: res.source, Timestamp: pq.Timestamp}
				if !u.cache.Put(q) {
					report.Pairs[key] = PairOutcome{Status: StatusSkipped, Source: res.source, Reason: "older than cached quote"}
					log.Infow("refresh_pair", "pair", key, "source", res.source, "status", StatusSkipped, "reason", "older than cached quote")
					continue
				}
				report.Pairs[key] = PairOutcome{Status: StatusUpdated, Source: res.source}
				log.Infow("refresh_pair", "pair", key, "source", res.source, "status", StatusUpdated, "rate", pq.Rate.String())
			}
		}
	}

	for _, out := range report.Pairs {
		switch out.Status {
		case StatusUpdated:
			report.Updated++
		case StatusFailed:
			report.Failed++
		case StatusSkipped:
			report.Skipped++
		}
	}
	if report.Updated > 0 {
		u.cache.SetLastRefresh(start)
	}
	report.Duration = u.now().Sub(start)
	return report
}
