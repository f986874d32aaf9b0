package types

// Catalog object kinds.
const (
	ObjectTable = "table"
	ObjectView  = "view"
)

// Result is the bounded outcome of one executed statement. It is never
// mutated after the materializer builds it.
type Result struct {
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated"`
	Warning   string   `json:"warning,omitempty"`
}

// SchemaListing is one catalog object in the no-argument schema listing.
type SchemaListing struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// SchemaList is the full catalog listing payload.
type SchemaList struct {
	Tables         []SchemaListing `json:"tables"`
	Recommendation string          `json:"recommendation"`
}

// ColumnInfo describes one column of a catalog object.
type ColumnInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// TableSchema is the per-object descriptor returned by the catalog reader.
// SampleRows are aligned with Columns; their order follows the recency
// policy documented on the reader.
type TableSchema struct {
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Description string       `json:"description"`
	Columns     []ColumnInfo `json:"columns"`
	RowCount    int64        `json:"row_count"`
	SampleRows  [][]any      `json:"sample_rows"`
}

// ExampleQuery is one entry of the static example catalog, consumed
// verbatim from the embedded data asset.
type ExampleQuery struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SQL         string `json:"sql"`
	UseCase     string `json:"use_case"`
}

// ExampleSet is the payload returned for an example catalog request.
type ExampleSet struct {
	Category            string         `json:"category"`
	Examples            []ExampleQuery `json:"examples"`
	AvailableCategories []string       `json:"available_categories"`
	Note                string         `json:"note"`
}
