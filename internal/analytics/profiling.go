package analytics

import (
	"sort"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
	"github.com/The-vyanshuDev/datalens-backend/internal/utils"
)

const leaderboardSize = 8

type ProfilingInsights struct {
	AverageCompleteness float64          `json:"averageCompleteness"`
	HealthyTables       int              `json:"healthyTables"`
	WarningTables       int              `json:"warningTables"`
	Freshness           FreshnessBuckets `json:"freshness"`
	QualityLeaders      []TableScore     `json:"qualityLeaders"`
	NullRiskLeaders     []NullRiskColumn `json:"nullRiskLeaders"`
}

type FreshnessBuckets struct {
	Fresh       int `json:"fresh"`
	Monitor     int `json:"monitor"`
	Stale       int `json:"stale"`
	NoTimestamp int `json:"noTimestamp"`
}

type TableScore struct {
	Table string  `json:"table"`
	Score float64 `json:"score"`
}

type NullRiskColumn struct {
	Table   string  `json:"table"`
	Column  string  `json:"column"`
	NullPct float64 `json:"nullPct"`
}

// BuildProfilingInsights computes the quality view from the profiling
// document alone.
func BuildProfilingInsights(profiling []models.ProfileRow) ProfilingInsights {
	var insights ProfilingInsights

	var sum float64
	var finiteRows int
	scores := make([]TableScore, 0, len(profiling))
	var nullRisk []NullRiskColumn

	for _, row := range profiling {
		completeness, finite := models.Finite(row.Completeness.TableCompletenessPct)
		if finite {
			sum += completeness
			finiteRows++
		}

		if row.KeyHealth.Healthy() {
			insights.HealthyTables++
		} else {
			insights.WarningTables++
		}

		bucketFreshness(&insights.Freshness, row.Freshness.StalenessDays)

		penalty := 0.0
		if !row.KeyHealth.Healthy() {
			penalty = 12
		}
		scores = append(scores, TableScore{
			Table: row.TableName,
			Score: utils.Clamp(completeness-penalty, 0, 100),
		})

		for _, col := range row.Completeness.Columns {
			pct, ok := models.Finite(col.CompletenessPct)
			if col.NullCount > 0 && ok && pct < 100 {
				nullRisk = append(nullRisk, NullRiskColumn{
					Table:   row.TableName,
					Column:  col.Column,
					NullPct: nullPct(pct),
				})
			}
		}
	}

	if finiteRows > 0 {
		insights.AverageCompleteness = sum / float64(finiteRows)
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	insights.QualityLeaders = top(scores, leaderboardSize)

	sort.SliceStable(nullRisk, func(i, j int) bool { return nullRisk[i].NullPct > nullRisk[j].NullPct })
	insights.NullRiskLeaders = top(nullRisk, leaderboardSize)

	return insights
}

func nullPct(completenessPct float64) float64 {
	pct := 100 - completenessPct
	if pct < 0 {
		return 0
	}
	return pct
}

// Staleness buckets: a week of slack before a table needs watching, a month
// before it counts as stale.
func bucketFreshness(buckets *FreshnessBuckets, stalenessDays *float64) {
	switch {
	case stalenessDays == nil:
		buckets.NoTimestamp++
	case *stalenessDays <= 7:
		buckets.Fresh++
	case *stalenessDays <= 30:
		buckets.Monitor++
	default:
		buckets.Stale++
	}
}

func top[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
