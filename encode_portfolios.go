package valutatrade

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// EncodePortfolios writes all portfolios as one canonical JSON object
// keyed by user, each user mapping currency codes to balances. Users and
// codes are sorted so successive snapshots diff cleanly.
func EncodePortfolios(w io.Writer, portfolios map[string]*Portfolio) error {
	root := &jsonObjectWriter{}
	for _, user := range sortedKeys(portfolios) {
		p := portfolios[user]
		balances := &jsonObjectWriter{}
		for _, h := range p.Holdings() {
			balances.Append(h.Currency, h.Amount)
		}
		root.Append(user, balances)
	}
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// DecodePortfolios reads a portfolio snapshot back into live portfolios.
func DecodePortfolios(r io.Reader) (map[string]*Portfolio, error) {
	var raw map[string]map[string]decimal.Decimal
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid portfolio snapshot: %w", err)
	}
	portfolios := make(map[string]*Portfolio, len(raw))
	for user, balances := range raw {
		p := NewPortfolio(user)
		for code, amount := range balances {
			p.setBalance(code, amount)
		}
		portfolios[user] = p
	}
	return portfolios, nil
}
