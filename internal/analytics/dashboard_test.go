package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

func fptr(v float64) *float64 { return &v }

func profileRow(table string, completeness *float64, status string, rows int64) models.ProfileRow {
	return models.ProfileRow{
		TableName: table,
		Completeness: models.TableCompleteness{
			RowCount:             rows,
			TableCompletenessPct: completeness,
		},
		KeyHealth: models.KeyHealth{Status: status},
	}
}

func TestBuildDashboardTotals(t *testing.T) {
	schema := []models.SchemaTable{
		{TableName: "users", Columns: []models.SchemaColumn{{Name: "id"}, {Name: "email"}, {Name: "created_at"}}},
		{TableName: "orders", Columns: []models.SchemaColumn{{Name: "id"}, {Name: "user_id"}}},
	}

	data := BuildDashboard(schema, nil, nil, "shop")
	require.Equal(t, "shop", data.Database)
	require.Equal(t, 2, data.TotalTables)
	require.Equal(t, 5, data.TotalColumns)
	require.Equal(t, 1, data.SensitiveFields)
	require.Equal(t, 0.0, data.AvgCompleteness)
	require.Equal(t, 0.0, data.QualityScore)
}

func TestBuildDashboardAverageIgnoresNonFinite(t *testing.T) {
	profiling := []models.ProfileRow{
		profileRow("a", fptr(95), models.KeyStatusHealthy, 10),
		profileRow("b", fptr(math.NaN()), models.KeyStatusHealthy, 10),
		profileRow("c", nil, models.KeyStatusHealthy, 10),
	}

	data := BuildDashboard(nil, profiling, nil, "db")
	require.Equal(t, 95.0, data.AvgCompleteness)
}

func TestBuildDashboardQualityScore(t *testing.T) {
	profiling := []models.ProfileRow{
		profileRow("a", fptr(90), models.KeyStatusIssuesFound, 10),
		profileRow("b", fptr(80), models.KeyStatusMissingPrimaryKey, 10),
		profileRow("c", fptr(100), models.KeyStatusHealthy, 10),
	}

	data := BuildDashboard(nil, profiling, nil, "db")
	require.Equal(t, 2, data.UnhealthyCount)
	// mean 90, minus 4 per unhealthy table
	require.InDelta(t, 82.0, data.QualityScore, 1e-9)
}

func TestBuildDashboardSensitiveFieldKeywords(t *testing.T) {
	schema := []models.SchemaTable{
		{TableName: "customers", Columns: []models.SchemaColumn{
			{Name: "Email_Address"},
			{Name: "PHONE"},
			{Name: "billing_address"},
			{Name: "note"},
		}},
	}

	data := BuildDashboard(schema, nil, nil, "db")
	// a column matching several keywords still counts once
	require.Equal(t, 3, data.SensitiveFields)
}

func TestTableExplorerStatusBoundaries(t *testing.T) {
	schema := []models.SchemaTable{
		{TableName: "active"},
		{TableName: "review"},
		{TableName: "deprecated"},
	}
	profiling := []models.ProfileRow{
		profileRow("active", fptr(90), models.KeyStatusHealthy, 1),
		profileRow("review", fptr(70), models.KeyStatusHealthy, 2),
		profileRow("deprecated", fptr(69.9), models.KeyStatusHealthy, 3),
	}

	data := BuildDashboard(schema, profiling, nil, "db")
	byName := make(map[string]TableExplorerRow)
	for _, row := range data.TableExplorer {
		byName[row.Name] = row
	}
	require.Equal(t, "Active", byName["active"].Status)
	require.Equal(t, "Review", byName["review"].Status)
	require.Equal(t, "Deprecated", byName["deprecated"].Status)
}

func TestTableExplorerUnhealthyPenaltyAndSort(t *testing.T) {
	schema := []models.SchemaTable{
		{TableName: "small"},
		{TableName: "big"},
	}
	profiling := []models.ProfileRow{
		profileRow("small", fptr(100), models.KeyStatusIssuesFound, 5),
		profileRow("big", fptr(80), models.KeyStatusHealthy, 500),
	}

	data := BuildDashboard(schema, profiling, nil, "db")
	require.Equal(t, "big", data.TableExplorer[0].Name)
	require.Equal(t, "small", data.TableExplorer[1].Name)
	require.InDelta(t, 85.0, data.TableExplorer[1].Quality, 1e-9)
	require.Equal(t, "Review", data.TableExplorer[1].Status)
}

func TestProfileJoinIsCaseInsensitiveLastWins(t *testing.T) {
	schema := []models.SchemaTable{{TableName: "Users"}}
	profiling := []models.ProfileRow{
		profileRow("USERS", fptr(50), models.KeyStatusHealthy, 1),
		profileRow("users", fptr(99), models.KeyStatusHealthy, 7),
	}

	data := BuildDashboard(schema, profiling, nil, "db")
	require.Len(t, data.TableExplorer, 1)
	require.Equal(t, int64(7), data.TableExplorer[0].Rows)
	require.InDelta(t, 99.0, data.TableExplorer[0].Quality, 1e-9)
}
