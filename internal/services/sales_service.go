package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"posjournal/internal/catalog"
	"posjournal/internal/core"
	"posjournal/internal/journal"
	"posjournal/internal/log"
)

var (
	ErrUnknownProduct      = errors.New("unknown product")
	ErrEmptyCustomCategory = errors.New("custom category is empty")
)

// SaleInput is a sale as entered at the register.
type SaleInput struct {
	ProductID string
	Quantity  int
	Date      string // YYYY-MM-DD, empty means today

	// Category overrides the product's category.
	Category string
	// UseCustom selects CustomCategory, which then wins over Category and
	// is remembered for later sales.
	UseCustom      bool
	CustomCategory string
}

// SalesService turns register input into journal transactions.
type SalesService struct {
	store      *journal.Store
	categories *journal.Categories
	catalog    *catalog.Catalog
	now        func() time.Time
	newID      func() string
}

// SalesOption configures a SalesService.
type SalesOption func(*SalesService)

// WithClock sets the source of "today" and of the time zone used for dates.
func WithClock(now func() time.Time) SalesOption {
	return func(s *SalesService) { s.now = now }
}

// WithIDGenerator replaces the transaction id generator.
func WithIDGenerator(newID func() string) SalesOption {
	return func(s *SalesService) { s.newID = newID }
}

func NewSalesService(store *journal.Store, categories *journal.Categories, products *catalog.Catalog, opts ...SalesOption) *SalesService {
	s := &SalesService{
		store:      store,
		categories: categories,
		catalog:    products,
		now:        time.Now,
		newID:      func() string { return "tx-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record validates in, prices it from the catalog and adds it to the journal.
func (s *SalesService) Record(ctx context.Context, in SaleInput) (core.Transaction, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentSales)

	product, ok := s.catalog.Find(strings.TrimSpace(in.ProductID))
	if !ok {
		return core.Transaction{}, fmt.Errorf("%w %q", ErrUnknownProduct, in.ProductID)
	}
	if in.Quantity < 1 {
		return core.Transaction{}, fmt.Errorf("%w: %d, must be at least 1", core.ErrInvalidQuantity, in.Quantity)
	}

	now := s.now()
	date := core.FormatDate(now)
	if d := strings.TrimSpace(in.Date); d != "" {
		day, err := core.ParseDate(d, now.Location())
		if err != nil {
			return core.Transaction{}, err
		}
		date = core.FormatDate(day)
	}

	category, custom, err := resolveCategory(in, product)
	if err != nil {
		return core.Transaction{}, err
	}
	if custom {
		s.categories.Add(ctx, category)
	}

	tx := core.Transaction{
		ID:          s.newID(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Category:    category,
		UnitPrice:   product.Price,
		Quantity:    in.Quantity,
		Date:        date,
		Total:       core.LineTotal(product.Price, in.Quantity),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("build transaction: %w", err)
	}
	s.store.Add(ctx, tx)

	logger.DebugContext(ctx, "Sale recorded", log.FieldTransaction, tx.ID, log.FieldProduct, tx.ProductID)
	return tx, nil
}

// Remove deletes a transaction and reports whether it existed.
func (s *SalesService) Remove(ctx context.Context, id string) bool {
	return s.store.Remove(ctx, strings.TrimSpace(id))
}

// AvailableCategories lists the categories offered for a sale: catalog
// categories first, then custom ones.
func (s *SalesService) AvailableCategories() []string {
	return journal.Dedupe(append(s.catalog.Categories(), s.categories.All()...))
}

func resolveCategory(in SaleInput, product core.Product) (category string, custom bool, err error) {
	if c := strings.TrimSpace(in.CustomCategory); c != "" {
		return c, true, nil
	}
	if in.UseCustom {
		return "", false, ErrEmptyCustomCategory
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		return c, false, nil
	}
	if c := strings.TrimSpace(product.Category); c != "" {
		return c, false, nil
	}
	return core.Uncategorized, false, nil
}
