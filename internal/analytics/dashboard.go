package analytics

import (
	"sort"
	"strings"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
	"github.com/The-vyanshuDev/datalens-backend/internal/utils"
)

// sensitiveKeywords flags columns that usually carry PII or credentials.
// Matched as lower-cased substrings of the column name.
var sensitiveKeywords = []string{
	"email", "phone", "mobile", "address", "password", "secret",
	"token", "ssn", "tax", "birth", "dob", "card", "iban", "upi",
}

type DashboardData struct {
	Database         string             `json:"database"`
	TotalTables      int                `json:"totalTables"`
	TotalColumns     int                `json:"totalColumns"`
	AvgCompleteness  float64            `json:"avgCompleteness"`
	UnhealthyCount   int                `json:"unhealthyCount"`
	QualityScore     float64            `json:"qualityScore"`
	SensitiveFields  int                `json:"sensitiveFields"`
	DocumentedTables int                `json:"documentedTables"`
	TableExplorer    []TableExplorerRow `json:"tableExplorer"`
}

type TableExplorerRow struct {
	Name    string  `json:"name"`
	Columns int     `json:"columns"`
	Rows    int64   `json:"rows"`
	Quality float64 `json:"quality"`
	Status  string  `json:"status"`
}

// profileIndex maps lower-cased table names to their profiling rows.
// Duplicate names are not guaranteed unique upstream; the last row wins.
func profileIndex(profiling []models.ProfileRow) map[string]models.ProfileRow {
	idx := make(map[string]models.ProfileRow, len(profiling))
	for _, row := range profiling {
		idx[strings.ToLower(row.TableName)] = row
	}
	return idx
}

// BuildDashboard joins the three raw documents into the dashboard summary.
// It never fails: missing or malformed fields degrade to zero values.
func BuildDashboard(schema []models.SchemaTable, profiling []models.ProfileRow, doc *models.Documentation, database string) DashboardData {
	profiles := profileIndex(profiling)

	data := DashboardData{
		Database:    database,
		TotalTables: len(schema),
	}

	for _, table := range schema {
		data.TotalColumns += len(table.Columns)
		for _, col := range table.Columns {
			name := strings.ToLower(col.Name)
			for _, keyword := range sensitiveKeywords {
				if strings.Contains(name, keyword) {
					data.SensitiveFields++
					break
				}
			}
		}
	}

	var sum float64
	var finiteRows int
	for _, row := range profiling {
		if pct, ok := models.Finite(row.Completeness.TableCompletenessPct); ok {
			sum += pct
			finiteRows++
		}
		if !row.KeyHealth.Healthy() {
			data.UnhealthyCount++
		}
	}
	if finiteRows > 0 {
		data.AvgCompleteness = sum / float64(finiteRows)
	}
	data.QualityScore = utils.Clamp(data.AvgCompleteness-4*float64(data.UnhealthyCount), 0, 100)

	if doc != nil {
		data.DocumentedTables = len(doc.Tables)
	}

	data.TableExplorer = buildTableExplorer(schema, profiles)
	return data
}

func buildTableExplorer(schema []models.SchemaTable, profiles map[string]models.ProfileRow) []TableExplorerRow {
	rows := make([]TableExplorerRow, 0, len(schema))
	for _, table := range schema {
		profile, found := profiles[strings.ToLower(table.TableName)]

		var completeness float64
		var rowCount int64
		unhealthy := false
		if found {
			completeness, _ = models.Finite(profile.Completeness.TableCompletenessPct)
			rowCount = profile.Completeness.RowCount
			unhealthy = !profile.KeyHealth.Healthy()
		}

		penalty := 0.0
		if unhealthy {
			penalty = 15
		}
		quality := utils.Clamp(completeness-penalty, 0, 100)

		rows = append(rows, TableExplorerRow{
			Name:    table.TableName,
			Columns: len(table.Columns),
			Rows:    rowCount,
			Quality: quality,
			Status:  tableStatus(quality),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rows > rows[j].Rows })
	return rows
}

func tableStatus(quality float64) string {
	switch {
	case quality >= 90:
		return "Active"
	case quality >= 70:
		return "Review"
	default:
		return "Deprecated"
	}
}
