package assets

import _ "embed"

// CatalogJSON is the default product catalog used when no catalog file is configured.
//
//go:embed catalog/pos_items.json
var CatalogJSON []byte
