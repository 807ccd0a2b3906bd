// Package report renders the journal, the catalog and dashboards as markdown.
package report

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"posjournal/internal/analytics"
	"posjournal/internal/core"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates, _ = fs.Sub(templateFS, "templates")

var funcs = template.FuncMap{
	"money":   core.FormatCurrency,
	"percent": func(d decimal.Decimal) string { return d.StringFixed(1) + "%" },
	"sum":     core.SumTotals,
	"inc":     func(i int) int { return i + 1 },
	"cell":    cell,
}

// Dashboard renders a dashboard summary.
func Dashboard(s analytics.Summary) string {
	partials := map[string]string{
		"dashboard_title":      "dashboard_title.md",
		"dashboard_summary":    "dashboard_summary.md",
		"dashboard_trend":      "dashboard_trend.md",
		"dashboard_top":        "dashboard_top.md",
		"dashboard_categories": "dashboard_categories.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, s)
}

// Journal renders transactions as a table, in the given order.
func Journal(txs []core.Transaction) string {
	return renderTemplate("journal", "journal.md", nil, txs)
}

// Products renders the product catalog.
func Products(products []core.Product) string {
	return renderTemplate("products", "products.md", nil, products)
}

// Categories renders a bullet list of category names.
func Categories(names []string) string {
	var b strings.Builder
	b.WriteString("# Categories\n\n")
	for _, n := range names {
		fmt.Fprintf(&b, "- %s\n", n)
	}
	return b.String()
}

// renderTemplate parses mainFile and its partials and executes it with data.
// Errors are rendered in place of the report.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
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

// cell makes s safe inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
