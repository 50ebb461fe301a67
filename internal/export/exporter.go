// Package export turns a frozen snapshot of the three raw documents into the
// downloadable report artifacts. Everything is re-derived from the snapshot
// so an export never depends on live dashboard state.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
	"github.com/The-vyanshuDev/datalens-backend/internal/utils"
)

const ReportVersion = "1.0.0"

// ErrNotReady is returned when an export is attempted before all three
// source documents are loaded. No partial export is ever written.
var ErrNotReady = errors.New("export unavailable: schema, profiling and documentation must all be loaded")

type Metadata struct {
	ProjectName     string   `json:"project_name"`
	Database        string   `json:"database"`
	DatabaseSlug    string   `json:"database_slug"`
	ExportedAt      string   `json:"exported_at"`
	ReportVersion   string   `json:"report_version"`
	SourcesIncluded []string `json:"sources_included"`
}

type Payload struct {
	Metadata  Metadata             `json:"metadata"`
	Schema    []models.SchemaTable `json:"schema"`
	Profiling []models.ProfileRow  `json:"profiling"`
	Doc       models.Documentation `json:"doc"`
}

// Exporter assembles payloads and artifact filenames. The clock is injected
// so tests control the export timestamp.
type Exporter struct {
	projectName string
	clock       clockwork.Clock
}

func New(projectName string, clock clockwork.Clock) *Exporter {
	return &Exporter{projectName: projectName, clock: clock}
}

// IsReady reports whether all three source documents are present and
// non-empty. Export endpoints refuse to produce artifacts otherwise.
func IsReady(schema []models.SchemaTable, profiling []models.ProfileRow, doc *models.Documentation) bool {
	return len(schema) > 0 && len(profiling) > 0 && doc != nil && len(doc.Tables) > 0
}

// NewPayload freezes the three documents into a self-contained snapshot.
func (e *Exporter) NewPayload(database string, schema []models.SchemaTable, profiling []models.ProfileRow, doc *models.Documentation) (*Payload, error) {
	if !IsReady(schema, profiling, doc) {
		return nil, ErrNotReady
	}
	return &Payload{
		Metadata: Metadata{
			ProjectName:     e.projectName,
			Database:        database,
			DatabaseSlug:    utils.SlugifyDatabaseName(database),
			ExportedAt:      e.clock.Now().Format(time.RFC3339),
			ReportVersion:   ReportVersion,
			SourcesIncluded: []string{"schema", "profiling", "doc"},
		},
		Schema:    schema,
		Profiling: profiling,
		Doc:       *doc,
	}, nil
}

// JSON renders the payload as the indented JSON artifact.
func (e *Exporter) JSON(p *Payload) ([]byte, error) {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export payload: %w", err)
	}
	return out, nil
}

// Filename builds "{slug}_report_{YYYY-MM-DD_HHMMSS}.{ext}" from the local
// wall clock at invocation.
func (e *Exporter) Filename(database, ext string) string {
	stamp := e.clock.Now().Format("2006-01-02_150405")
	return fmt.Sprintf("%s_report_%s.%s", utils.SlugifyDatabaseName(database), stamp, ext)
}
