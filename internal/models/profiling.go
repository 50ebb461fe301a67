package models

import "math"

// ProfileRow mirrors one entry of the extracted profiling document.
// Numeric percentages are pointers: upstream emits null for empty tables,
// and downstream averages must skip those rows instead of counting zeros.
type ProfileRow struct {
	TableName    string            `json:"table_name"`
	Completeness TableCompleteness `json:"completeness"`
	Freshness    Freshness         `json:"freshness"`
	KeyHealth    KeyHealth         `json:"key_health"`
}

type TableCompleteness struct {
	RowCount             int64                `json:"row_count"`
	ColumnCount          int                  `json:"column_count"`
	NonNullCells         int64                `json:"non_null_cells"`
	NullCells            int64                `json:"null_cells"`
	TableCompletenessPct *float64             `json:"table_completeness_pct"`
	Columns              []ColumnCompleteness `json:"columns"`
}

type ColumnCompleteness struct {
	Column          string   `json:"column"`
	NonNullCount    int64    `json:"non_null_count"`
	NullCount       int64    `json:"null_count"`
	CompletenessPct *float64 `json:"completeness_pct"`
}

type Freshness struct {
	TemporalColumnsChecked int               `json:"temporal_columns_checked"`
	LatestColumn           *string           `json:"latest_column"`
	LatestTimestamp        *string           `json:"latest_timestamp"`
	StalenessDays          *float64          `json:"staleness_days"`
	Columns                []FreshnessColumn `json:"columns"`
}

type FreshnessColumn struct {
	Column      string  `json:"column"`
	LatestValue *string `json:"latest_value"`
}

// Key health statuses emitted by the profiler.
const (
	KeyStatusHealthy           = "healthy"
	KeyStatusIssuesFound       = "issues_found"
	KeyStatusMissingPrimaryKey = "missing_primary_key"
)

type KeyHealth struct {
	Status      string            `json:"status"`
	PrimaryKey  *PrimaryKeyHealth `json:"primary_key,omitempty"`
	ForeignKeys *ForeignKeyHealth `json:"foreign_keys,omitempty"`
}

func (k KeyHealth) Healthy() bool {
	return k.Status == KeyStatusHealthy
}

type PrimaryKeyHealth struct {
	Columns         []string `json:"columns"`
	NullRows        *int64   `json:"null_rows"`
	DuplicateGroups *int64   `json:"duplicate_groups"`
	DuplicateRows   *int64   `json:"duplicate_rows"`
}

type ForeignKeyHealth struct {
	RelationshipsChecked int               `json:"relationships_checked"`
	OrphanRows           int64             `json:"orphan_rows"`
	Details              []ForeignKeyCheck `json:"details"`
}

type ForeignKeyCheck struct {
	LocalColumns    []string `json:"local_columns"`
	ReferredTable   string   `json:"referred_table"`
	ReferredColumns []string `json:"referred_columns"`
	OrphanRows      int64    `json:"orphan_rows"`
}

// Finite reports the value of an optional percentage when it is present and
// a real number. Absent, NaN and Inf values are excluded from averages.
func Finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}
