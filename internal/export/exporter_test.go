package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

func fptr(v float64) *float64 { return &v }

func testExporter() *Exporter {
	at := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	return New("DataLens", clockwork.NewFakeClockAt(at))
}

func readyDocuments() ([]models.SchemaTable, []models.ProfileRow, *models.Documentation) {
	schema := []models.SchemaTable{
		{
			TableName:   "users",
			Columns:     []models.SchemaColumn{{Name: "id"}, {Name: "email"}},
			PrimaryKeys: []string{"id"},
		},
		{
			TableName: "orders",
			Columns:   []models.SchemaColumn{{Name: "id"}, {Name: "user_id"}},
			ForeignKeys: []models.ForeignKey{{
				Columns:         []string{"user_id"},
				ReferredTable:   "users",
				ReferredColumns: []string{"id"},
			}},
		},
	}
	profiling := []models.ProfileRow{
		{
			TableName: "users",
			Completeness: models.TableCompleteness{
				RowCount:             10,
				TableCompletenessPct: fptr(95),
				Columns: []models.ColumnCompleteness{
					{Column: "email", NullCount: 2, CompletenessPct: fptr(80)},
				},
			},
			KeyHealth: models.KeyHealth{Status: models.KeyStatusHealthy},
			Freshness: models.Freshness{StalenessDays: fptr(3)},
		},
		{
			TableName:    "orders",
			Completeness: models.TableCompleteness{RowCount: 50, TableCompletenessPct: fptr(85)},
			KeyHealth:    models.KeyHealth{Status: models.KeyStatusIssuesFound},
			Freshness:    models.Freshness{StalenessDays: fptr(45)},
		},
	}
	doc := &models.Documentation{
		Overview: models.DocOverview{
			Summary:               "Shop database",
			GlobalRecommendations: []string{"assign owners", "watch staleness"},
		},
		Tables: []models.DocTable{
			{TableName: "users", Priority: "high", BusinessSummary: "Customer accounts.",
				UsageRecommendations: []string{"join on id"}},
			{TableName: "orders", Priority: "medium"},
		},
		GeneratedAt: "2026-08-29T10:00:00Z",
		Model:       "claude-sonnet-4-5",
	}
	return schema, profiling, doc
}

func TestIsReadyGating(t *testing.T) {
	schema, profiling, doc := readyDocuments()

	require.True(t, IsReady(schema, profiling, doc))
	require.False(t, IsReady(nil, profiling, doc))
	require.False(t, IsReady(schema, nil, doc))
	require.False(t, IsReady(schema, profiling, nil))
	require.False(t, IsReady(schema, profiling, &models.Documentation{}))
}

func TestNewPayloadRefusedWhenNotReady(t *testing.T) {
	schema, _, doc := readyDocuments()

	_, err := testExporter().NewPayload("shop", schema, nil, doc)
	require.ErrorIs(t, err, ErrNotReady)
}

func TestPayloadMetadata(t *testing.T) {
	schema, profiling, doc := readyDocuments()

	payload, err := testExporter().NewPayload("My Prod DB!!", schema, profiling, doc)
	require.NoError(t, err)
	require.Equal(t, "DataLens", payload.Metadata.ProjectName)
	require.Equal(t, "My Prod DB!!", payload.Metadata.Database)
	require.Equal(t, "my-prod-db", payload.Metadata.DatabaseSlug)
	require.Equal(t, "2026-08-30T14:05:09Z", payload.Metadata.ExportedAt)
	require.Equal(t, ReportVersion, payload.Metadata.ReportVersion)
	require.Equal(t, []string{"schema", "profiling", "doc"}, payload.Metadata.SourcesIncluded)
}

func TestJSONArtifactRoundTrips(t *testing.T) {
	schema, profiling, doc := readyDocuments()
	e := testExporter()

	payload, err := e.NewPayload("shop", schema, profiling, doc)
	require.NoError(t, err)

	raw, err := e.JSON(payload)
	require.NoError(t, err)

	var decoded Payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, *payload, decoded)
}

func TestFilename(t *testing.T) {
	e := testExporter()
	require.Equal(t, "my-prod-db_report_2026-08-30_140509.json", e.Filename("My Prod DB!!", "json"))
	require.Equal(t, "database_report_2026-08-30_140509.md", e.Filename("  ", "md"))
}

func TestMarkdownIsDeterministic(t *testing.T) {
	schema, profiling, doc := readyDocuments()
	e := testExporter()

	payload, err := e.NewPayload("shop", schema, profiling, doc)
	require.NoError(t, err)
	require.Equal(t, e.Markdown(payload), e.Markdown(payload))
}

func TestMarkdownContent(t *testing.T) {
	schema, profiling, doc := readyDocuments()
	e := testExporter()

	payload, err := e.NewPayload("shop", schema, profiling, doc)
	require.NoError(t, err)
	md := e.Markdown(payload)

	require.Contains(t, md, "- Tables: 2")
	require.Contains(t, md, "- Columns: 4")
	require.Contains(t, md, "- Relationships: 1")
	// schema summary table is alphabetical: orders before users
	require.Less(t, strings.Index(md, "| orders |"), strings.Index(md, "| users |"))
	require.Contains(t, md, "- Average completeness: 90.00%")
	require.Contains(t, md, "- Key health: 1 healthy, 1 need review")
	require.Contains(t, md, "- Freshness: 1 fresh, 0 monitor, 1 stale, 0 without timestamps")
	require.Contains(t, md, "| users | email | 20.00 |")
	require.Contains(t, md, "- assign owners")
	require.Contains(t, md, "### users")
	require.NotContains(t, md, "omitted from this report")
}

func TestMarkdownCapsDocumentedTables(t *testing.T) {
	schema, profiling, doc := readyDocuments()

	doc.Tables = nil
	for i := 0; i < 105; i++ {
		doc.Tables = append(doc.Tables, models.DocTable{
			TableName: fmt.Sprintf("table_%03d", i),
			Priority:  "low",
		})
	}

	e := testExporter()
	payload, err := e.NewPayload("shop", schema, profiling, doc)
	require.NoError(t, err)
	md := e.Markdown(payload)

	require.Contains(t, md, "### table_099")
	require.NotContains(t, md, "### table_100")
	require.Contains(t, md, "_5 additional documented tables omitted from this report._")
}
