// Package catalog loads the read-only product catalog.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"posjournal/assets"
	"posjournal/internal/core"
	"posjournal/internal/log"
)

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []core.Product
	byID     map[string]int
}

// New builds a catalog from already normalized products. When ids repeat,
// Find returns the first product.
func New(products []core.Product) *Catalog {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		if _, dup := c.byID[p.ID]; !dup {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Load reads a catalog file. An empty path loads the embedded default catalog.
func Load(ctx context.Context, path string) (*Catalog, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentCatalog)

	raw := assets.CatalogJSON
	source := "embedded"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		raw, source = b, path
	}

	products, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", source, err)
	}
	c := New(products)
	logger.DebugContext(ctx, "Catalog loaded", log.FieldPath, source, log.FieldCount, c.Len())
	return c, nil
}

// Parse decodes a JSON array of loosely shaped product records and
// normalizes them.
func Parse(raw []byte) ([]core.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var entries []map[string]any
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	return Normalize(entries), nil
}

// Normalize maps raw records onto products.
//
// Records without any of itemName, name or title are dropped. Indexes used
// for generated ids count only the kept records. Prices fall back from
// unitPrice to price, and anything non-numeric or negative becomes zero.
func Normalize(entries []map[string]any) []core.Product {
	out := make([]core.Product, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		name := firstText(e, "itemName", "name", "title")
		if name == "" {
			continue
		}
		index := len(out)

		id := text(e["id"])
		if id == "" {
			id = fmt.Sprintf("item-%d", index)
		}
		category := text(e["category"])
		if category == "" {
			category = core.Uncategorized
		}

		out = append(out, core.Product{
			ID:          id,
			Name:        name,
			Category:    category,
			Price:       price(e),
			Description: text(e["description"]),
		})
	}
	return out
}

// Products returns the catalog in file order.
func (c *Catalog) Products() []core.Product {
	return slices.Clone(c.products)
}

// Find returns the product with the given id.
func (c *Catalog) Find(id string) (core.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return core.Product{}, false
	}
	return c.products[i], true
}

// Categories returns the distinct product categories in first-seen order.
// A product without a category counts as Uncategorized.
func (c *Catalog) Categories() []string {
	var out []string
	for _, p := range c.products {
		category := strings.TrimSpace(p.Category)
		if category == "" {
			category = core.Uncategorized
		}
		if !slices.Contains(out, category) {
			out = append(out, category)
		}
	}
	return out
}

func (c *Catalog) Len() int { return len(c.products) }

func firstText(e map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := text(e[k]); v != "" {
			return v
		}
	}
	return ""
}

func text(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func price(e map[string]any) decimal.Decimal {
	v, ok := e["unitPrice"]
	if !ok || v == nil {
		v = e["price"]
	}
	var raw string
	switch v := v.(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	default:
		return decimal.Zero
	}
	// Negative or unparsable prices become zero.
	d, err := core.ParseAmount(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
