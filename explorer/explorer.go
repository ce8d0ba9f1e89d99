// Package explorer provides schema introspection across the supported
// engines and presents the results as a lazily-expanded tree, the way a
// workbench sidebar fetches metadata one level at a time.
package explorer

// Column describes one table column as reported by the engine's catalog.
type Column struct {
	Name             string `json:"name"`
	DataType         string `json:"dataType"`
	Nullable         bool   `json:"nullable"`
	PrimaryKey       bool   `json:"primaryKey"`
	ForeignKey       bool   `json:"foreignKey"`
	ReferencedTable  string `json:"referencedTable,omitempty"`
	ReferencedColumn string `json:"referencedColumn,omitempty"`
}

// Index describes one index and the columns it covers.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

// TableDetails bundles the per-table metadata the UI shows on expansion.
type TableDetails struct {
	Columns []Column `json:"columns"`
	Indexes []Index  `json:"indexes"`
}

// Field describes one sampled document field in a MongoDB collection.
type Field struct {
	Name     string `json:"name"`
	BSONType string `json:"bsonType"`
}

// KeyInfo describes one Redis key.
type KeyInfo struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	TTL  string `json:"ttl"`
}

// RowPage is one page of browsed table rows.
type RowPage struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Total   int64            `json:"total"`
}
