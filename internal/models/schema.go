package models

// SchemaTable mirrors one entry of the extracted schema document
// (data/<slug>/schema.json).
type SchemaTable struct {
	TableName   string         `json:"table_name"`
	Columns     []SchemaColumn `json:"columns"`
	PrimaryKeys []string       `json:"primary_keys"`
	ForeignKeys []ForeignKey   `json:"foreign_keys"`
}

type SchemaColumn struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

// ForeignKey keeps the upstream field name "column" for the local column
// list; the extractor has always emitted it in the plural-in-singular form.
type ForeignKey struct {
	Columns         []string `json:"column"`
	ReferredTable   string   `json:"referred_table"`
	ReferredColumns []string `json:"referred_columns"`
}
