package valutatrade

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is one base-denominated rate reported by a quote source.
type PriceQuote struct {
	Rate      decimal.Decimal
	Timestamp time.Time
}

// QuoteSource fetches base-denominated rates for a set of currency codes.
//
// Fetch returns whatever pairs it could obtain, keyed by currency code.
// Codes absent from the result are the source's failures for this run;
// the caller decides how to report them. An error means the whole fetch
// failed and no partial result is available.
type QuoteSource interface {
	// Name identifies the source in journals and refresh reports.
	Name() string
	// Codes lists the currency codes this source is responsible for.
	Codes() []string
	// Fetch retrieves current rates for the given codes.
	Fetch(ctx context.Context, codes []string) (map[string]PriceQuote, error)
}
