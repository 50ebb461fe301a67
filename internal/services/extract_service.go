package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/The-vyanshuDev/datalens-backend/internal/database"
	"github.com/The-vyanshuDev/datalens-backend/internal/datastore"
	"github.com/The-vyanshuDev/datalens-backend/internal/models"
	"github.com/The-vyanshuDev/datalens-backend/internal/repositories"
	"github.com/The-vyanshuDev/datalens-backend/internal/utils"
)

const extractSchemaName = "public"

// ExtractService connects to a target database, extracts the schema and
// data-profile documents and persists them in the document store.
type ExtractService struct {
	store *datastore.Store
	clock clockwork.Clock
}

func NewExtractService(store *datastore.Store, clock clockwork.Clock) *ExtractService {
	return &ExtractService{store: store, clock: clock}
}

// ExtractSchema reads table, column and key metadata from the target
// database and stores it as the schema document.
func (s *ExtractService) ExtractSchema(ctx context.Context, params database.ConnectionParams) (*datastore.SchemaDocument, error) {
	pool, err := database.Connect(ctx, params)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	repo := repositories.NewSchemaRepository(pool)
	tables, err := extractTables(ctx, repo)
	if err != nil {
		return nil, err
	}

	doc := &datastore.SchemaDocument{
		Status:       "success",
		Database:     params.Database,
		DatabaseSlug: utils.SlugifyDatabaseName(params.Database),
		TablesFound:  len(tables),
		Schema:       tables,
	}
	if err := s.store.SaveSchema(params.Database, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func extractTables(ctx context.Context, repo *repositories.SchemaRepository) ([]models.SchemaTable, error) {
	names, err := repo.GetTables(ctx, extractSchemaName)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]models.SchemaTable, 0, len(names))
	for _, name := range names {
		columns, err := repo.GetColumns(ctx, extractSchemaName, name)
		if err != nil {
			return nil, fmt.Errorf("get columns for %s: %w", name, err)
		}
		pks, err := repo.GetPrimaryKeys(ctx, extractSchemaName, name)
		if err != nil {
			return nil, fmt.Errorf("get primary keys for %s: %w", name, err)
		}
		fks, err := repo.GetForeignKeys(ctx, extractSchemaName, name)
		if err != nil {
			return nil, fmt.Errorf("get foreign keys for %s: %w", name, err)
		}
		tables = append(tables, models.SchemaTable{
			TableName:   name,
			Columns:     columns,
			PrimaryKeys: pks,
			ForeignKeys: fks,
		})
	}
	return tables, nil
}

// ExtractProfile computes completeness, freshness and key-health statistics
// for every table and stores the profiling document.
func (s *ExtractService) ExtractProfile(ctx context.Context, params database.ConnectionParams) (*datastore.ProfilingDocument, error) {
	pool, err := database.Connect(ctx, params)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	schemaRepo := repositories.NewSchemaRepository(pool)
	profRepo := repositories.NewProfilingRepository(pool)

	tables, err := extractTables(ctx, schemaRepo)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	profile := make([]models.ProfileRow, 0, len(tables))
	for _, table := range tables {
		row, err := profileTable(ctx, profRepo, table, now)
		if err != nil {
			return nil, err
		}
		profile = append(profile, row)
	}

	doc := &datastore.ProfilingDocument{
		Status:         "success",
		Database:       params.Database,
		DatabaseSlug:   utils.SlugifyDatabaseName(params.Database),
		TablesProfiled: len(profile),
		Profile:        profile,
	}
	if err := s.store.SaveProfiling(params.Database, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func profileTable(ctx context.Context, repo *repositories.ProfilingRepository, table models.SchemaTable, now time.Time) (models.ProfileRow, error) {
	row := models.ProfileRow{TableName: table.TableName}

	rowCount, err := repo.RowCount(ctx, table.TableName)
	if err != nil {
		return row, err
	}

	var nonNullCells int64
	columnStats := make([]models.ColumnCompleteness, 0, len(table.Columns))
	for _, col := range table.Columns {
		nonNull, err := repo.NonNullCount(ctx, table.TableName, col.Name)
		if err != nil {
			return row, err
		}
		nonNullCells += nonNull
		columnStats = append(columnStats, models.ColumnCompleteness{
			Column:          col.Name,
			NonNullCount:    nonNull,
			NullCount:       rowCount - nonNull,
			CompletenessPct: pct(nonNull, rowCount),
		})
	}

	totalCells := rowCount * int64(len(table.Columns))
	row.Completeness = models.TableCompleteness{
		RowCount:             rowCount,
		ColumnCount:          len(table.Columns),
		NonNullCells:         nonNullCells,
		NullCells:            totalCells - nonNullCells,
		TableCompletenessPct: pct(nonNullCells, totalCells),
		Columns:              columnStats,
	}

	freshness, err := profileFreshness(ctx, repo, table, now)
	if err != nil {
		return row, err
	}
	row.Freshness = freshness

	keyHealth, err := profileKeyHealth(ctx, repo, table)
	if err != nil {
		return row, err
	}
	row.KeyHealth = keyHealth

	return row, nil
}

func profileFreshness(ctx context.Context, repo *repositories.ProfilingRepository, table models.SchemaTable, now time.Time) (models.Freshness, error) {
	var freshness models.Freshness
	var latest *time.Time
	var latestColumn string

	for _, col := range table.Columns {
		if !isTemporalColumn(col.Type) {
			continue
		}
		freshness.TemporalColumnsChecked++

		raw, err := repo.MaxTextValue(ctx, table.TableName, col.Name)
		if err != nil {
			return freshness, err
		}
		parsed := parseTemporal(raw)

		entry := models.FreshnessColumn{Column: col.Name}
		if parsed != nil {
			iso := parsed.Format(time.RFC3339)
			entry.LatestValue = &iso
		}
		freshness.Columns = append(freshness.Columns, entry)

		if parsed != nil && (latest == nil || parsed.After(*latest)) {
			latest = parsed
			latestColumn = col.Name
		}
	}

	if latest != nil {
		iso := latest.Format(time.RFC3339)
		staleness := round2(now.Sub(*latest).Seconds() / 86400)
		freshness.LatestColumn = &latestColumn
		freshness.LatestTimestamp = &iso
		freshness.StalenessDays = &staleness
	}
	return freshness, nil
}

func profileKeyHealth(ctx context.Context, repo *repositories.ProfilingRepository, table models.SchemaTable) (models.KeyHealth, error) {
	health := models.KeyHealth{
		PrimaryKey:  &models.PrimaryKeyHealth{Columns: table.PrimaryKeys},
		ForeignKeys: &models.ForeignKeyHealth{},
	}

	var totalOrphans int64
	for _, fk := range table.ForeignKeys {
		if len(fk.Columns) == 0 || fk.ReferredTable == "" || len(fk.Columns) != len(fk.ReferredColumns) {
			continue
		}
		orphans, err := repo.OrphanRows(ctx, table.TableName, fk.Columns, fk.ReferredTable, fk.ReferredColumns)
		if err != nil {
			return health, err
		}
		totalOrphans += orphans
		health.ForeignKeys.Details = append(health.ForeignKeys.Details, models.ForeignKeyCheck{
			LocalColumns:    fk.Columns,
			ReferredTable:   fk.ReferredTable,
			ReferredColumns: fk.ReferredColumns,
			OrphanRows:      orphans,
		})
	}
	health.ForeignKeys.RelationshipsChecked = len(health.ForeignKeys.Details)
	health.ForeignKeys.OrphanRows = totalOrphans

	if len(table.PrimaryKeys) == 0 {
		health.Status = models.KeyStatusMissingPrimaryKey
		return health, nil
	}

	nullRows, err := repo.PrimaryKeyNullRows(ctx, table.TableName, table.PrimaryKeys)
	if err != nil {
		return health, err
	}
	dupGroups, dupRows, err := repo.PrimaryKeyDuplicates(ctx, table.TableName, table.PrimaryKeys)
	if err != nil {
		return health, err
	}
	health.PrimaryKey.NullRows = &nullRows
	health.PrimaryKey.DuplicateGroups = &dupGroups
	health.PrimaryKey.DuplicateRows = &dupRows

	if nullRows == 0 && dupRows == 0 && totalOrphans == 0 {
		health.Status = models.KeyStatusHealthy
	} else {
		health.Status = models.KeyStatusIssuesFound
	}
	return health, nil
}

func isTemporalColumn(columnType string) bool {
	normalized := strings.ToLower(columnType)
	return strings.Contains(normalized, "date") || strings.Contains(normalized, "time")
}

// parseTemporal parses postgres text renderings of date and timestamp
// values. Naive values are taken as UTC; unparseable values (time-of-day
// columns, intervals) are skipped.
func parseTemporal(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999-07",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

func pct(part, total int64) *float64 {
	if total == 0 {
		return nil
	}
	value := round2(float64(part) / float64(total) * 100)
	return &value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
