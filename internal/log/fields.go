package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldKey         = "key"
	FieldBytes       = "bytes"
	FieldCount       = "count"
	FieldBackend     = "backend"
	FieldPeriod      = "period"
	FieldDay         = "day"
	FieldTransaction = "transaction_id"
	FieldProduct     = "product"
	FieldCategory    = "category"
	FieldTotal       = "total"
	FieldPath        = "path"
	FieldCacheHit    = "cache_hit"
	FieldShared      = "shared"
	FieldIndex       = "index"
	FieldSkipped     = "skipped"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentJournal   = "journal"
	ComponentStorage   = "storage"
	ComponentCatalog   = "catalog"
	ComponentDashboard = "dashboard"
	ComponentSales     = "sales"
	ComponentCache     = "cache"
	ComponentBackend   = "backend"
	ComponentCLI       = "cli"
)

// Operations defines standard operation names
const (
	OpLoad   = "load"
	OpSave   = "save"
	OpDecode = "decode"
	OpEncode = "encode"
	OpCreate = "create"
	OpDelete = "delete"
	OpRender = "render"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithKey adds the persistent store key
func (f LogFields) WithKey(key string) LogFields {
	f[FieldKey] = key
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithCount adds a count field
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// WithIndex adds the position of a record inside a stored sequence
func (f LogFields) WithIndex(i int) LogFields {
	f[FieldIndex] = i
	return f
}

// WithSkipped adds the number of records dropped while decoding
func (f LogFields) WithSkipped(n int) LogFields {
	f[FieldSkipped] = n
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(id, product, category, total string) LogFields {
	f[FieldTransaction] = id
	f[FieldProduct] = product
	f[FieldCategory] = category
	f[FieldTotal] = total
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
