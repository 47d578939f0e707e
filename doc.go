// Package valutatrade implements a multi-currency trading hub: users hold
// balances in fiat and crypto currencies, trade between them against a single
// base currency, and value their whole portfolio in any supported currency.
//
// Exchange rates come from external providers (CoinGecko for crypto,
// ExchangeRate-API for fiat), are merged into a durable rate cache, and are
// resolved for arbitrary pairs by triangular conversion through the base
// currency. Staleness is traceable, never blocking: a rate older than the
// configured TTL is still usable, but every result carries a stale flag.
package valutatrade
