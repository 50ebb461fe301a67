package models

// Documentation mirrors the AI-generated business documentation document.
type Documentation struct {
	Overview    DocOverview `json:"overview"`
	Tables      []DocTable  `json:"tables"`
	GeneratedAt string      `json:"generated_at"`
	Model       string      `json:"model"`
}

type DocOverview struct {
	Summary               string   `json:"summary"`
	GlobalRecommendations []string `json:"global_recommendations"`
}

type DocTable struct {
	TableName               string   `json:"table_name"`
	Priority                string   `json:"priority"`
	BusinessSummary         string   `json:"business_summary"`
	UsageRecommendations    []string `json:"usage_recommendations"`
	DataQualityObservations []string `json:"data_quality_observations"`
	SuggestedKPIs           []string `json:"suggested_kpis"`
}
