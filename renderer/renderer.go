// Package renderer turns domain values into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	valutatrade "github.com/valutatrade/hub"
)

//go:embed *.md
var templates embed.FS

// RenderValuation renders a portfolio valuation to a markdown string.
func RenderValuation(v *valutatrade.Valuation) string {
	partials := map[string]string{
		"valuation_lines": "valuation_lines.md",
		"valuation_total": "valuation_total.md",
	}
	return renderTemplate("valuation", "valuation.md", partials, v)
}

// RenderRefresh renders a refresh report to a markdown string.
func RenderRefresh(r *valutatrade.RefreshReport) string {
	return renderTemplate("refresh", "refresh.md", nil, r)
}

// RenderTrades renders trade history to a markdown string.
func RenderTrades(user string, trades []valutatrade.TradeRecord) string {
	data := struct {
		User   string
		Trades []valutatrade.TradeRecord
	}{User: user, Trades: trades}
	return renderTemplate("trades", "trades.md", nil, data)
}

// RenderCurrencies renders the supported currency catalog to a markdown
// string.
func RenderCurrencies(currencies []valutatrade.Currency) string {
	return renderTemplate("currencies", "currencies.md", nil, currencies)
}

// RenderRate renders one resolved conversion to a markdown string.
func RenderRate(c valutatrade.Conversion) string {
	return renderTemplate("rate", "rate.md", nil, c)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, readErr := fs.ReadFile(templates, file)
		if readErr != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
