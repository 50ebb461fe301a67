package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfilingRepository runs the per-table counting queries behind the data
// profile: completeness, freshness and key-health checks. Identifiers are
// quoted with pgx's sanitizer since table and column names come from the
// customer's catalog, not from our code.
type ProfilingRepository struct {
	pool *pgxpool.Pool
}

func NewProfilingRepository(pool *pgxpool.Pool) *ProfilingRepository {
	return &ProfilingRepository{pool: pool}
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (r *ProfilingRepository) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", table, err)
	}
	return count, nil
}

// NonNullCount counts non-null values in one column.
func (r *ProfilingRepository) NonNullCount(ctx context.Context, table, column string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s", quoteIdent(column), quoteIdent(table))
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count non-null %s.%s: %w", table, column, err)
	}
	return count, nil
}

// MaxTextValue returns MAX(column) rendered as text, or nil when the table
// is empty. Text keeps the scan working across date, time and timestamp
// column types; the caller parses it.
func (r *ProfilingRepository) MaxTextValue(ctx context.Context, table, column string) (*string, error) {
	var value *string
	query := fmt.Sprintf("SELECT MAX(%s)::text FROM %s", quoteIdent(column), quoteIdent(table))
	if err := r.pool.QueryRow(ctx, query).Scan(&value); err != nil {
		return nil, fmt.Errorf("max of %s.%s: %w", table, column, err)
	}
	return value, nil
}

// PrimaryKeyNullRows counts rows where any primary key column is null.
func (r *ProfilingRepository) PrimaryKeyNullRows(ctx context.Context, table string, pkColumns []string) (int64, error) {
	conditions := make([]string, len(pkColumns))
	for i, col := range pkColumns {
		conditions[i] = quoteIdent(col) + " IS NULL"
	}
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s",
		quoteIdent(table), strings.Join(conditions, " OR "),
	)

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pk null rows of %s: %w", table, err)
	}
	return count, nil
}

// PrimaryKeyDuplicates counts key groups that occur more than once and the
// number of surplus rows those groups contain.
func (r *ProfilingRepository) PrimaryKeyDuplicates(ctx context.Context, table string, pkColumns []string) (groups, rows int64, err error) {
	quoted := make([]string, len(pkColumns))
	for i, col := range pkColumns {
		quoted[i] = quoteIdent(col)
	}
	groupBy := strings.Join(quoted, ", ")

	groupQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM (SELECT %s, COUNT(*) AS dup_count FROM %s GROUP BY %s HAVING COUNT(*) > 1) AS duplicate_groups",
		groupBy, quoteIdent(table), groupBy,
	)
	if err := r.pool.QueryRow(ctx, groupQuery).Scan(&groups); err != nil {
		return 0, 0, fmt.Errorf("count pk duplicate groups of %s: %w", table, err)
	}

	rowQuery := fmt.Sprintf(
		"SELECT COALESCE(SUM(dup_count - 1), 0) FROM (SELECT COUNT(*) AS dup_count FROM %s GROUP BY %s HAVING COUNT(*) > 1) AS duplicate_rows",
		quoteIdent(table), groupBy,
	)
	if err := r.pool.QueryRow(ctx, rowQuery).Scan(&rows); err != nil {
		return 0, 0, fmt.Errorf("count pk duplicate rows of %s: %w", table, err)
	}
	return groups, rows, nil
}

// OrphanRows counts child rows whose foreign key values have no matching
// parent row. Column lists must be the same length.
func (r *ProfilingRepository) OrphanRows(ctx context.Context, table string, localColumns []string, referredTable string, referredColumns []string) (int64, error) {
	if len(localColumns) == 0 || len(localColumns) != len(referredColumns) {
		return 0, fmt.Errorf("mismatched foreign key columns on %s", table)
	}

	joins := make([]string, len(localColumns))
	hasValue := make([]string, len(localColumns))
	parentMissing := make([]string, len(referredColumns))
	for i := range localColumns {
		joins[i] = fmt.Sprintf("l.%s = p.%s", quoteIdent(localColumns[i]), quoteIdent(referredColumns[i]))
		hasValue[i] = fmt.Sprintf("l.%s IS NOT NULL", quoteIdent(localColumns[i]))
		parentMissing[i] = fmt.Sprintf("p.%s IS NULL", quoteIdent(referredColumns[i]))
	}

	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s AS l LEFT JOIN %s AS p ON %s WHERE (%s) AND (%s)",
		quoteIdent(table),
		quoteIdent(referredTable),
		strings.Join(joins, " AND "),
		strings.Join(hasValue, " OR "),
		strings.Join(parentMissing, " AND "),
	)

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orphan rows of %s: %w", table, err)
	}
	return count, nil
}
