package valutatrade

import "github.com/shopspring/decimal"

// ValuationLine is one holding priced in the valuation's base currency.
// Converted is nil when no conversion route exists; Reason then says why.
type ValuationLine struct {
	Currency  string
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Converted *Money
	Stale     bool
	Reason    string
}

// Valuation prices a whole portfolio in one target currency. Total sums only
// the lines that converted; unpriceable holdings stay visible with a reason
// instead of silently dropping or zeroing the total.
type Valuation struct {
	User  string
	Base  string
	Lines []ValuationLine
	Total Money
	Stale bool
}

// Value prices every holding of the portfolio in the target currency, which
// may be any catalog currency, not just the resolver's pivot.
func Value(p *Portfolio, resolver *Resolver, target string) (Valuation, error) {
	cur, err := LookupCurrency(target)
	if err != nil {
		return Valuation{}, err
	}
	target = cur.Code

	v := Valuation{User: p.UserID, Base: target}
	total := decimal.Zero
	for _, h := range p.Holdings() {
		line := ValuationLine{Currency: h.Currency, Amount: h.Amount}
		conv, err := resolver.Rate(h.Currency, target)
		if err != nil {
			line.Reason = err.Error()
			v.Lines = append(v.Lines, line)
			continue
		}
		converted := M(h.Amount.Mul(conv.Rate), target)
		line.Rate = conv.Rate
		line.Converted = &converted
		line.Stale = conv.Stale
		v.Stale = v.Stale || conv.Stale
		total = total.Add(converted.Amount())
		v.Lines = append(v.Lines, line)
	}
	v.Total = M(total, target)
	return v, nil
}
