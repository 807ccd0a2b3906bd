package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"posjournal/internal/analytics"
	"posjournal/internal/core"
	"posjournal/internal/report"
	"posjournal/internal/services"
)

// Register adds every journal command to c.
func Register(c *subcommands.Commander, s *Session) {
	c.Register(&recordCmd{session: s}, "sales")
	c.Register(&removeCmd{session: s}, "sales")
	c.Register(&listCmd{session: s}, "sales")

	c.Register(&dashboardCmd{session: s}, "reports")

	c.Register(&productsCmd{session: s}, "reference")
	c.Register(&categoriesCmd{session: s}, "reference")
}

// open returns the App, reporting failures on stderr.
func open(ctx context.Context, s *Session) (*App, bool) {
	app, err := s.App(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return app, true
}

func fail(app *App, err error) subcommands.ExitStatus {
	fmt.Fprintf(app.Err, "Error: %v\n", err)
	return subcommands.ExitFailure
}

type recordCmd struct {
	session *Session

	product  string
	qty      int
	date     string
	category string
	custom   string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a sale" }
func (*recordCmd) Usage() string {
	return `posjournal record -product <id> [-qty n] [-date YYYY-MM-DD] [-category c | -custom c]

  Records a sale of a catalog product. The total is the catalog price times
  the quantity. -custom adds a new category and remembers it.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "catalog product id")
	f.IntVar(&c.qty, "qty", 1, "quantity sold")
	f.StringVar(&c.date, "date", "", "sale date (defaults to today)")
	f.StringVar(&c.category, "category", "", "category (defaults to the product's)")
	f.StringVar(&c.custom, "custom", "", "new custom category")
}

func (c *recordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" {
		fmt.Fprintln(os.Stderr, "Error: -product is required")
		return subcommands.ExitUsageError
	}
	app, ok := open(ctx, c.session)
	if !ok {
		return subcommands.ExitFailure
	}

	useCustom := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "custom" {
			useCustom = true
		}
	})

	tx, err := app.Sales.Record(ctx, services.SaleInput{
		ProductID:      c.product,
		Quantity:       c.qty,
		Date:           c.date,
		Category:       c.category,
		UseCustom:      useCustom,
		CustomCategory: c.custom,
	})
	if err != nil {
		return fail(app, err)
	}
	fmt.Fprintf(app.Out, "Recorded %s: %d x %s (%s) = %s on %s\n",
		tx.ID, tx.Quantity, tx.ProductName, tx.Category, core.FormatCurrency(tx.Total), tx.Date)
	return subcommands.ExitSuccess
}

type removeCmd struct {
	session *Session
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a recorded sale" }
func (*removeCmd) Usage() string {
	return `posjournal remove <id>...

  Removes the sales with the given transaction ids.
`
}

func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one transaction id is required")
		return subcommands.ExitUsageError
	}
	app, ok := open(ctx, c.session)
	if !ok {
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		if app.Sales.Remove(ctx, id) {
			fmt.Fprintf(app.Out, "Removed %s\n", id)
			continue
		}
		fmt.Fprintf(app.Err, "No transaction %s\n", id)
		status = subcommands.ExitFailure
	}
	return status
}

type listCmd struct {
	session *Session

	period string
	raw    bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list recorded sales, newest first" }
func (*listCmd) Usage() string {
	return `posjournal list [-period daily|weekly|monthly] [-raw]

  Lists the journal. With -period only the sales inside that window are shown.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "only show sales inside this period")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, ok := open(ctx, c.session)
	if !ok {
		return subcommands.ExitFailure
	}

	txs := app.Store.All()
	if c.period != "" {
		period, err := core.ParsePeriod(c.period)
		if err != nil {
			return fail(app, err)
		}
		txs = analytics.FilterByPeriod(txs, period, app.Now())
	}
	if err := report.Print(app.Out, report.Journal(txs), c.raw); err != nil {
		return fail(app, err)
	}
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	session *Session

	period string
	now    string
	raw    bool
	asJSON bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the sales dashboard" }
func (*dashboardCmd) Usage() string {
	return `posjournal dashboard [-period daily|weekly|monthly] [-now YYYY-MM-DD] [-raw | -json]

  Displays totals, the sales trend, top selling items and the category
  breakdown for the period ending today (or -now).
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", string(core.Weekly), "dashboard period")
	f.StringVar(&c.now, "now", "", "reference day (defaults to today)")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
	f.BoolVar(&c.asJSON, "json", false, "print the summary as JSON")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := core.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	app, ok := open(ctx, c.session)
	if !ok {
		return subcommands.ExitFailure
	}

	now, err := c.reference(app)
	if err != nil {
		return fail(app, err)
	}
	summary, err := app.Dashboard.Summary(ctx, period, now)
	if err != nil {
		return fail(app, err)
	}

	if c.asJSON {
		enc := json.NewEncoder(app.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fail(app, err)
		}
		return subcommands.ExitSuccess
	}
	if err := report.Print(app.Out, report.Dashboard(summary), c.raw); err != nil {
		return fail(app, err)
	}
	return subcommands.ExitSuccess
}

// reference returns the dashboard's "now": the current time, or noon of
// the -now day in the configured zone.
func (c *dashboardCmd) reference(app *App) (time.Time, error) {
	now := app.Now()
	if strings.TrimSpace(c.now) == "" {
		return now, nil
	}
	day, err := core.ParseDate(strings.TrimSpace(c.now), now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(12 * time.Hour), nil
}

type productsCmd struct {
	session *Session
	raw     bool
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list the product catalog" }
func (*productsCmd) Usage() string {
	return `posjournal products [-raw]

  Lists the products that can be recorded.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
}

func (c *productsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, ok := open(ctx, c.session)
	if !ok {
		return subcommands.ExitFailure
	}
	if err := report.Print(app.Out, report.Products(app.Catalog.Products()), c.raw); err != nil {
		return fail(app, err)
	}
	return subcommands.ExitSuccess
}

type categoriesCmd struct {
	session *Session
	add     string
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list or add sale categories" }
func (*categoriesCmd) Usage() string {
	return `posjournal categories [-add <name>]

  Lists catalog and custom categories. -add remembers a new custom category.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "custom category to add")
}

func (c *categoriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, ok := open(ctx, c.session)
	if !ok {
		return subcommands.ExitFailure
	}
	adding := false
	f.Visit(func(fl *flag.Flag) { adding = adding || fl.Name == "add" })
	if adding && !app.Categories.Add(ctx, c.add) && strings.TrimSpace(c.add) == "" {
		return fail(app, services.ErrEmptyCustomCategory)
	}
	if err := report.Print(app.Out, report.Categories(app.Sales.AvailableCategories()), true); err != nil {
		return fail(app, err)
	}
	return subcommands.ExitSuccess
}
