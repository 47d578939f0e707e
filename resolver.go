package valutatrade

import (
	"time"

	"github.com/shopspring/decimal"
)

// one is the multiplicative identity for rate derivations.
var one = decimal.NewFromInt(1)

// Conversion is a resolved rate between two currencies. Stale is advisory:
// the rate is usable, but at least one leg is older than the TTL and callers
// should warn. Via is the pivot code when the rate was derived triangularly,
// empty for identity, direct and reverse hits.
type Conversion struct {
	From  string
	To    string
	Rate  decimal.Decimal
	Stale bool
	Via   string
}

// Resolver derives a rate for any two supported currencies from the cache,
// routing through the pivot (base) currency when no direct quote exists.
type Resolver struct {
	cache *RateCache
	pivot string
	ttl   time.Duration
	now   func() time.Time // injectable for tests
}

// NewResolver builds a Resolver over a cache, with the given pivot currency
// and staleness TTL.
func NewResolver(cache *RateCache, pivot string, ttl time.Duration) *Resolver {
	return &Resolver{cache: cache, pivot: pivot, ttl: ttl, now: time.Now}
}

// Pivot returns the resolver's pivot currency code.
func (r *Resolver) Pivot() string { return r.pivot }

// Rate resolves the conversion rate from one currency to another.
//
// Resolution order: identity, direct quote, reverse quote (reciprocal), then
// the triangular derivation rate(from,pivot)/rate(to,pivot). Quotes are
// stored base-denominated (X → pivot), so pivot → X is the reciprocal of the
// stored quote. A missing leg fails with a NoRouteError naming that leg; a
// stale leg only flags the result.
func (r *Resolver) Rate(from, to string) (Conversion, error) {
	cfrom, err := LookupCurrency(from)
	if err != nil {
		return Conversion{}, err
	}
	cto, err := LookupCurrency(to)
	if err != nil {
		return Conversion{}, err
	}
	from, to = cfrom.Code, cto.Code
	conv := Conversion{From: from, To: to}

	if from == to {
		conv.Rate = one
		return conv, nil
	}

	now := r.now()

	if q, ok := r.cache.Get(from, to); ok {
		conv.Rate = q.Rate
		conv.Stale = q.StaleAt(r.ttl, now)
		return conv, nil
	}
	if q, ok := r.cache.Get(to, from); ok {
		conv.Rate = one.Div(q.Rate)
		conv.Stale = q.StaleAt(r.ttl, now)
		return conv, nil
	}

	// Triangular conversion through the pivot. Both legs are stored
	// X → pivot; a pivot endpoint is the identity leg.
	fromLeg, fromStale, err := r.leg(from, now)
	if err != nil {
		return Conversion{}, &NoRouteError{From: from, To: to, Missing: PairKey(from, r.pivot)}
	}
	toLeg, toStale, err := r.leg(to, now)
	if err != nil {
		return Conversion{}, &NoRouteError{From: from, To: to, Missing: PairKey(to, r.pivot)}
	}

	conv.Rate = fromLeg.Div(toLeg)
	conv.Stale = fromStale || toStale
	conv.Via = r.pivot
	return conv, nil
}

// leg returns the X → pivot rate for one currency and its staleness.
func (r *Resolver) leg(code string, now time.Time) (decimal.Decimal, bool, error) {
	if code == r.pivot {
		return one, false, nil
	}
	q, ok := r.cache.Get(code, r.pivot)
	if !ok {
		return decimal.Decimal{}, false, &NoRouteError{From: code, To: r.pivot, Missing: PairKey(code, r.pivot)}
	}
	return q.Rate, q.StaleAt(r.ttl, now), nil
}
