package valutatrade

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// CurrencyKind distinguishes fiat currencies from cryptocurrencies.
type CurrencyKind int

const (
	// Fiat is a state-issued currency (USD, EUR, ...).
	Fiat CurrencyKind = iota
	// Crypto is a cryptocurrency (BTC, ETH, ...).
	Crypto
)

func (k CurrencyKind) String() string {
	switch k {
	case Fiat:
		return "FIAT"
	case Crypto:
		return "CRYPTO"
	default:
		return "unknown"
	}
}

// Currency describes one supported currency. Issuer is the issuing country
// for fiat currencies and the consensus algorithm for cryptocurrencies; it is
// display-only and carries no semantics.
type Currency struct {
	Code   string
	Name   string
	Kind   CurrencyKind
	Issuer string
}

func (c Currency) String() string {
	return fmt.Sprintf("[%s] %s: %s (%s)", c.Kind, c.Code, c.Name, c.Issuer)
}

// catalog is the static set of supported currencies. It is loaded once and
// never mutated; trading an unknown code is a CurrencyNotFoundError.
var catalog = map[string]Currency{
	"USD": {Code: "USD", Name: "US Dollar", Kind: Fiat, Issuer: "United States"},
	"EUR": {Code: "EUR", Name: "Euro", Kind: Fiat, Issuer: "Eurozone"},
	"GBP": {Code: "GBP", Name: "British Pound", Kind: Fiat, Issuer: "United Kingdom"},
	"RUB": {Code: "RUB", Name: "Russian Ruble", Kind: Fiat, Issuer: "Russian Federation"},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Kind: Fiat, Issuer: "Japan"},
	"CNY": {Code: "CNY", Name: "Chinese Yuan", Kind: Fiat, Issuer: "China"},

	"BTC":  {Code: "BTC", Name: "Bitcoin", Kind: Crypto, Issuer: "SHA-256"},
	"ETH":  {Code: "ETH", Name: "Ethereum", Kind: Crypto, Issuer: "Ethash"},
	"SOL":  {Code: "SOL", Name: "Solana", Kind: Crypto, Issuer: "PoH"},
	"BNB":  {Code: "BNB", Name: "Binance Coin", Kind: Crypto, Issuer: "BFT"},
	"XRP":  {Code: "XRP", Name: "Ripple", Kind: Crypto, Issuer: "RPCA"},
	"USDT": {Code: "USDT", Name: "Tether", Kind: Crypto, Issuer: "Omni Layer"},
}

// NormalizeCode canonicalizes a user-provided currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupCurrency returns the catalog entry for a code.
func LookupCurrency(code string) (Currency, error) {
	c, ok := catalog[NormalizeCode(code)]
	if !ok {
		return Currency{}, &CurrencyNotFoundError{Code: code}
	}
	return c, nil
}

// IsSupported reports whether a code is in the catalog.
func IsSupported(code string) bool {
	_, ok := catalog[NormalizeCode(code)]
	return ok
}

// AllCurrencies iterates over the catalog in code order.
func AllCurrencies() iter.Seq[Currency] {
	return func(yield func(Currency) bool) {
		for _, code := range SupportedCodes() {
			if !yield(catalog[code]) {
				return
			}
		}
	}
}

// SupportedCodes returns all catalog codes, sorted.
func SupportedCodes() []string {
	return codesOf(func(Currency) bool { return true })
}

// FiatCodes returns the fiat catalog codes, sorted.
func FiatCodes() []string {
	return codesOf(func(c Currency) bool { return c.Kind == Fiat })
}

// CryptoCodes returns the crypto catalog codes, sorted.
func CryptoCodes() []string {
	return codesOf(func(c Currency) bool { return c.Kind == Crypto })
}

func codesOf(accept func(Currency) bool) []string {
	codes := make([]string, 0, len(catalog))
	for code, c := range catalog {
		if accept(c) {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes
}
