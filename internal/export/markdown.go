package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/The-vyanshuDev/datalens-backend/internal/graph"
	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

// At most this many documented tables get a full AI-insight section; the
// report closes with an omitted-count note when the list is longer.
const maxDocumentedTables = 100

const nullRiskTableSize = 10

// Markdown renders the deterministic Markdown artifact from the payload,
// re-deriving every figure from the frozen documents.
func (e *Exporter) Markdown(p *Payload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Report — %s\n\n", p.Metadata.ProjectName, p.Metadata.Database)
	fmt.Fprintf(&b, "Exported at %s (report v%s).\n\n", p.Metadata.ExportedAt, p.Metadata.ReportVersion)

	writeSchemaSection(&b, p.Schema)
	writeProfilingSection(&b, p.Profiling)
	writeDocSection(&b, p.Doc)

	return b.String()
}

func writeSchemaSection(b *strings.Builder, schema []models.SchemaTable) {
	totalColumns := 0
	for _, t := range schema {
		totalColumns += len(t.Columns)
	}
	relations := len(graph.Build(schema).Edges)

	b.WriteString("## Schema Overview\n\n")
	fmt.Fprintf(b, "- Tables: %d\n", len(schema))
	fmt.Fprintf(b, "- Columns: %d\n", totalColumns)
	fmt.Fprintf(b, "- Relationships: %d\n\n", relations)

	sorted := make([]models.SchemaTable, len(schema))
	copy(sorted, schema)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TableName < sorted[j].TableName })

	b.WriteString("| Table | Columns | Primary Keys | Foreign Keys |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, t := range sorted {
		fmt.Fprintf(b, "| %s | %d | %d | %d |\n",
			t.TableName, len(t.Columns), len(t.PrimaryKeys), len(t.ForeignKeys))
	}
	b.WriteString("\n")
}

func writeProfilingSection(b *strings.Builder, profiling []models.ProfileRow) {
	b.WriteString("## Data Quality\n\n")

	var sum float64
	var finiteRows, healthy int
	var fresh, monitor, stale, noTimestamp int
	type nullRisk struct {
		table, column string
		pct           float64
	}
	var risks []nullRisk

	for _, row := range profiling {
		if pct, ok := models.Finite(row.Completeness.TableCompletenessPct); ok {
			sum += pct
			finiteRows++
		}
		if row.KeyHealth.Healthy() {
			healthy++
		}
		switch {
		case row.Freshness.StalenessDays == nil:
			noTimestamp++
		case *row.Freshness.StalenessDays <= 7:
			fresh++
		case *row.Freshness.StalenessDays <= 30:
			monitor++
		default:
			stale++
		}
		for _, col := range row.Completeness.Columns {
			pct, ok := models.Finite(col.CompletenessPct)
			if col.NullCount > 0 && ok && pct < 100 {
				risks = append(risks, nullRisk{row.TableName, col.Column, max(0, 100-pct)})
			}
		}
	}

	avg := 0.0
	if finiteRows > 0 {
		avg = sum / float64(finiteRows)
	}
	fmt.Fprintf(b, "- Average completeness: %.2f%%\n", avg)
	fmt.Fprintf(b, "- Key health: %d healthy, %d need review\n", healthy, len(profiling)-healthy)
	fmt.Fprintf(b, "- Freshness: %d fresh, %d monitor, %d stale, %d without timestamps\n\n",
		fresh, monitor, stale, noTimestamp)

	sort.SliceStable(risks, func(i, j int) bool { return risks[i].pct > risks[j].pct })
	if len(risks) > nullRiskTableSize {
		risks = risks[:nullRiskTableSize]
	}
	if len(risks) > 0 {
		b.WriteString("### Top Null-Risk Columns\n\n")
		b.WriteString("| Table | Column | Null % |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, r := range risks {
			fmt.Fprintf(b, "| %s | %s | %.2f |\n", r.table, r.column, r.pct)
		}
		b.WriteString("\n")
	}
}

func writeDocSection(b *strings.Builder, doc models.Documentation) {
	b.WriteString("## AI Documentation\n\n")
	if doc.Overview.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", doc.Overview.Summary)
	}

	if len(doc.Overview.GlobalRecommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		for _, rec := range doc.Overview.GlobalRecommendations {
			fmt.Fprintf(b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	tables := doc.Tables
	omitted := 0
	if len(tables) > maxDocumentedTables {
		omitted = len(tables) - maxDocumentedTables
		tables = tables[:maxDocumentedTables]
	}

	for _, t := range tables {
		fmt.Fprintf(b, "### %s\n\n", t.TableName)
		if t.Priority != "" {
			fmt.Fprintf(b, "Priority: %s\n\n", t.Priority)
		}
		if t.BusinessSummary != "" {
			fmt.Fprintf(b, "%s\n\n", t.BusinessSummary)
		}
		writeInsightList(b, "Usage recommendations", t.UsageRecommendations)
		writeInsightList(b, "Quality observations", t.DataQualityObservations)
		writeInsightList(b, "Suggested KPIs", t.SuggestedKPIs)
	}

	if omitted > 0 {
		fmt.Fprintf(b, "_%d additional documented tables omitted from this report._\n", omitted)
	}
}

func writeInsightList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
