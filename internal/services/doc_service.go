package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/The-vyanshuDev/datalens-backend/internal/datastore"
	"github.com/The-vyanshuDev/datalens-backend/internal/models"
	"github.com/The-vyanshuDev/datalens-backend/internal/utils"
)

const docSystemPrompt = "You are an expert analytics consultant. You return only valid JSON."

// DocService generates the business documentation document from the stored
// schema and profiling documents.
type DocService struct {
	store     *datastore.Store
	completer Completer
	model     string
	clock     clockwork.Clock
}

func NewDocService(store *datastore.Store, completer Completer, model string, clock clockwork.Clock) *DocService {
	return &DocService{store: store, completer: completer, model: model, clock: clock}
}

// llmDocument is the shape the model is asked to return.
type llmDocument struct {
	OverviewSummary       string        `json:"overview_summary"`
	GlobalRecommendations []string      `json:"global_recommendations"`
	Tables                []llmDocTable `json:"tables"`
}

type llmDocTable struct {
	TableName               string   `json:"table_name"`
	BusinessSummary         string   `json:"business_summary"`
	UsageRecommendations    []string `json:"usage_recommendations"`
	DataQualityObservations []string `json:"data_quality_observations"`
	SuggestedKPIs           []string `json:"suggested_kpis"`
	Priority                string   `json:"priority"`
}

// Generate builds documentation for every table in the stored schema,
// normalizes the model output and persists doc.json. Schema and profiling
// must have been extracted first.
func (s *DocService) Generate(ctx context.Context, database string) (*datastore.DocDocument, error) {
	schemaDoc, err := s.store.LoadSchema(database)
	if err != nil {
		return nil, fmt.Errorf("load schema document: %w", err)
	}
	profilingDoc, err := s.store.LoadProfiling(database)
	if err != nil {
		return nil, fmt.Errorf("load profiling document: %w", err)
	}

	prompt, err := buildDocPrompt(schemaDoc.Schema, profilingDoc.Profile)
	if err != nil {
		return nil, err
	}

	raw, err := s.completer.Complete(ctx, docSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var llm llmDocument
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &llm); err != nil {
		return nil, fmt.Errorf("model did not return valid JSON: %w", err)
	}

	doc := s.normalize(llm, schemaDoc.Schema, profilingDoc.Profile)
	if err := s.store.SaveDoc(database, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func buildDocPrompt(schema []models.SchemaTable, profile []models.ProfileRow) (string, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("marshal schema for prompt: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile for prompt: %w", err)
	}

	var b strings.Builder
	b.WriteString(`Create a business-friendly documentation JSON from the provided schema and profiling data.

Return ONLY a valid JSON object with this exact top-level structure:
{
  "overview_summary": "string",
  "global_recommendations": ["string", "string", "string"],
  "tables": [
    {
      "table_name": "string",
      "business_summary": "string",
      "usage_recommendations": ["string", "string"],
      "data_quality_observations": ["string", "string"],
      "suggested_kpis": ["string", "string"],
      "priority": "high|medium|low"
    }
  ]
}

Rules:
1) Include every table from the schema exactly once.
2) Use the exact table_name values from schema input.
3) Keep writing practical, concise, and business-friendly.
4) No markdown, no extra keys, JSON only.

Schema JSON:
`)
	b.Write(schemaJSON)
	b.WriteString("\n\nProfiling JSON:\n")
	b.Write(profileJSON)
	return b.String(), nil
}

// stripCodeFences tolerates models that wrap the JSON in ``` blocks despite
// the instructions.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	var kept []string
	for _, line := range strings.Split(cleaned, "\n") {
		if strings.HasPrefix(line, "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// normalize guarantees one doc entry per schema table with non-empty fields,
// regardless of what the model omitted or invented.
func (s *DocService) normalize(llm llmDocument, schema []models.SchemaTable, profile []models.ProfileRow) *datastore.DocDocument {
	llmByTable := make(map[string]llmDocTable, len(llm.Tables))
	for _, t := range llm.Tables {
		llmByTable[t.TableName] = t
	}
	profileByTable := make(map[string]models.ProfileRow, len(profile))
	for _, p := range profile {
		profileByTable[p.TableName] = p
	}

	tables := make([]models.DocTable, 0, len(schema))
	for _, table := range schema {
		if table.TableName == "" {
			continue
		}
		llmTable := llmByTable[table.TableName]
		profileEntry := profileByTable[table.TableName]

		summary := llmTable.BusinessSummary
		if summary == "" {
			summary = fmt.Sprintf(
				"%s is a core business table with %d columns. Use it as a governed source in analytics and reporting workflows.",
				table.TableName, len(table.Columns),
			)
		}

		tables = append(tables, models.DocTable{
			TableName:       table.TableName,
			Priority:        normalizePriority(llmTable.Priority),
			BusinessSummary: summary,
			UsageRecommendations: stringList(llmTable.UsageRecommendations,
				[]string{"Define clear ownership and dashboard use cases for this table."}),
			DataQualityObservations: stringList(llmTable.DataQualityObservations,
				qualityObservations(profileEntry)),
			SuggestedKPIs: stringList(llmTable.SuggestedKPIs,
				[]string{"Define business KPIs based on this table and track trends weekly."}),
		})
	}

	overview := llm.OverviewSummary
	if overview == "" {
		overview = "Business documentation generated from schema and profiling outputs."
	}

	return &datastore.DocDocument{
		Status:      "success",
		GeneratedAt: s.clock.Now().UTC().Format(time.RFC3339),
		Model:       s.model,
		Overview: models.DocOverview{
			Summary: overview,
			GlobalRecommendations: stringList(llm.GlobalRecommendations, []string{
				"Adopt data ownership per table and define SLAs for quality metrics.",
				"Prioritize remediation on low-completeness and stale tables first.",
				"Use key-health checks as a release gate for downstream reporting.",
			}),
		},
		Tables: tables,
	}
}

func normalizePriority(priority string) string {
	p := strings.ToLower(strings.TrimSpace(priority))
	if utils.Contains([]string{"high", "medium", "low"}, p) {
		return p
	}
	return "medium"
}

func stringList(values, fallback []string) []string {
	var cleaned []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) > 0 {
		return cleaned
	}
	return fallback
}

// qualityObservations derives fallback observations from the profile when
// the model returns none for a table.
func qualityObservations(profile models.ProfileRow) []string {
	var observations []string

	if pct, ok := models.Finite(profile.Completeness.TableCompletenessPct); ok {
		observations = append(observations, fmt.Sprintf("Table completeness is %.2f%%.", pct))
	}
	if profile.Freshness.LatestTimestamp != nil {
		staleness := 0.0
		if profile.Freshness.StalenessDays != nil {
			staleness = *profile.Freshness.StalenessDays
		}
		observations = append(observations, fmt.Sprintf(
			"Latest timestamp observed is %s with staleness of %.2f days.",
			*profile.Freshness.LatestTimestamp, staleness,
		))
	} else {
		observations = append(observations, "No temporal column was found for freshness analysis.")
	}
	if profile.KeyHealth.Status != "" {
		observations = append(observations, fmt.Sprintf("Key health status is %s.", profile.KeyHealth.Status))
	}
	return observations
}
