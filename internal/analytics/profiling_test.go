package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

func TestAverageCompletenessIgnoresNonFinite(t *testing.T) {
	profiling := []models.ProfileRow{
		profileRow("a", fptr(95), models.KeyStatusHealthy, 1),
		profileRow("b", fptr(math.NaN()), models.KeyStatusHealthy, 1),
	}

	insights := BuildProfilingInsights(profiling)
	require.Equal(t, 95.0, insights.AverageCompleteness)
}

func TestAverageCompletenessEmptyInput(t *testing.T) {
	insights := BuildProfilingInsights(nil)
	require.Equal(t, 0.0, insights.AverageCompleteness)
	require.Empty(t, insights.QualityLeaders)
	require.Empty(t, insights.NullRiskLeaders)
}

func TestHealthSplit(t *testing.T) {
	profiling := []models.ProfileRow{
		profileRow("a", fptr(100), models.KeyStatusHealthy, 1),
		profileRow("b", fptr(100), models.KeyStatusIssuesFound, 1),
		profileRow("c", fptr(100), models.KeyStatusMissingPrimaryKey, 1),
	}

	insights := BuildProfilingInsights(profiling)
	require.Equal(t, 1, insights.HealthyTables)
	require.Equal(t, 2, insights.WarningTables)
}

func TestFreshnessBuckets(t *testing.T) {
	rows := []models.ProfileRow{
		{TableName: "none"},
		{TableName: "fresh", Freshness: models.Freshness{StalenessDays: fptr(7)}},
		{TableName: "monitor", Freshness: models.Freshness{StalenessDays: fptr(30)}},
		{TableName: "stale", Freshness: models.Freshness{StalenessDays: fptr(30.5)}},
	}

	insights := BuildProfilingInsights(rows)
	require.Equal(t, FreshnessBuckets{Fresh: 1, Monitor: 1, Stale: 1, NoTimestamp: 1}, insights.Freshness)
}

func TestQualityLeadersScoreAndCap(t *testing.T) {
	var profiling []models.ProfileRow
	for i := 0; i < 12; i++ {
		profiling = append(profiling, profileRow(
			fmt.Sprintf("t%02d", i), fptr(float64(50+i)), models.KeyStatusHealthy, 1,
		))
	}
	// unhealthy table loses 12 points
	profiling = append(profiling, profileRow("penalized", fptr(100), models.KeyStatusIssuesFound, 1))

	insights := BuildProfilingInsights(profiling)
	require.Len(t, insights.QualityLeaders, 8)
	require.Equal(t, "penalized", insights.QualityLeaders[0].Table)
	require.Equal(t, 88.0, insights.QualityLeaders[0].Score)
	require.Equal(t, "t11", insights.QualityLeaders[1].Table)
}

func TestNullRiskLeaders(t *testing.T) {
	profiling := []models.ProfileRow{
		{
			TableName: "events",
			Completeness: models.TableCompleteness{
				Columns: []models.ColumnCompleteness{
					{Column: "ok", NullCount: 0, CompletenessPct: fptr(90)},
					{Column: "full", NullCount: 3, CompletenessPct: fptr(100)},
					{Column: "broken", NullCount: 3, CompletenessPct: nil},
					{Column: "risky", NullCount: 5, CompletenessPct: fptr(62.5)},
					{Column: "worse", NullCount: 9, CompletenessPct: fptr(10)},
				},
			},
		},
	}

	insights := BuildProfilingInsights(profiling)
	require.Len(t, insights.NullRiskLeaders, 2)
	require.Equal(t, "worse", insights.NullRiskLeaders[0].Column)
	require.Equal(t, 90.0, insights.NullRiskLeaders[0].NullPct)
	require.Equal(t, "risky", insights.NullRiskLeaders[1].Column)
	require.Equal(t, 37.5, insights.NullRiskLeaders[1].NullPct)
}
