package analytics

import (
	"strings"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

type DocInsights struct {
	Summary               string            `json:"summary"`
	GeneratedAt           string            `json:"generatedAt"`
	Model                 string            `json:"model"`
	GlobalRecommendations []string          `json:"globalRecommendations"`
	PriorityCounts        PriorityCounts    `json:"priorityCounts"`
	Tables                []models.DocTable `json:"tables"`
}

type PriorityCounts struct {
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Unknown int `json:"unknown"`
}

// BuildDocInsights buckets documented tables by priority and passes the raw
// table list through unchanged; consumers filter and search over it.
func BuildDocInsights(doc *models.Documentation) DocInsights {
	var insights DocInsights
	if doc == nil {
		return insights
	}

	insights.Summary = doc.Overview.Summary
	insights.GeneratedAt = doc.GeneratedAt
	insights.Model = doc.Model
	insights.GlobalRecommendations = doc.Overview.GlobalRecommendations
	insights.Tables = doc.Tables

	for _, table := range doc.Tables {
		switch strings.ToLower(table.Priority) {
		case "high":
			insights.PriorityCounts.High++
		case "medium":
			insights.PriorityCounts.Medium++
		case "low":
			insights.PriorityCounts.Low++
		default:
			insights.PriorityCounts.Unknown++
		}
	}
	return insights
}
