package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

func TestBuildDocInsightsNil(t *testing.T) {
	insights := BuildDocInsights(nil)
	require.Empty(t, insights.Tables)
	require.Equal(t, PriorityCounts{}, insights.PriorityCounts)
}

func TestBuildDocInsightsPriorityBuckets(t *testing.T) {
	doc := &models.Documentation{
		Overview: models.DocOverview{
			Summary:               "overview",
			GlobalRecommendations: []string{"own your data"},
		},
		GeneratedAt: "2026-08-30T00:00:00Z",
		Model:       "claude-sonnet-4-5",
		Tables: []models.DocTable{
			{TableName: "a", Priority: "HIGH"},
			{TableName: "b", Priority: "medium"},
			{TableName: "c", Priority: "Low"},
			{TableName: "d", Priority: "critical"},
			{TableName: "e", Priority: ""},
		},
	}

	insights := BuildDocInsights(doc)
	require.Equal(t, PriorityCounts{High: 1, Medium: 1, Low: 1, Unknown: 2}, insights.PriorityCounts)
	require.Equal(t, "overview", insights.Summary)
	require.Equal(t, "claude-sonnet-4-5", insights.Model)
	require.Equal(t, doc.Tables, insights.Tables)
	require.Equal(t, []string{"own your data"}, insights.GlobalRecommendations)
}
