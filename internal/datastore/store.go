// Package datastore persists the extracted documents as JSON files under
// data/<database-slug>/, mirroring what the extraction endpoints return so a
// stored file can be replayed as an API response.
package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
	"github.com/The-vyanshuDev/datalens-backend/internal/utils"
)

const (
	SchemaFilename    = "schema.json"
	ProfilingFilename = "profiling.json"
	DocFilename       = "doc.json"
)

// ErrNotFound marks a document that has not been extracted yet for the
// requested database.
var ErrNotFound = errors.New("document not found")

// SchemaDocument is the on-disk envelope for schema.json.
type SchemaDocument struct {
	Status       string               `json:"status"`
	Database     string               `json:"database"`
	DatabaseSlug string               `json:"database_slug"`
	TablesFound  int                  `json:"tables_found"`
	Schema       []models.SchemaTable `json:"schema"`
}

// ProfilingDocument is the on-disk envelope for profiling.json.
type ProfilingDocument struct {
	Status         string              `json:"status"`
	Database       string              `json:"database"`
	DatabaseSlug   string              `json:"database_slug"`
	TablesProfiled int                 `json:"tables_profiled"`
	Profile        []models.ProfileRow `json:"profile"`
}

// DocDocument is the on-disk envelope for doc.json.
type DocDocument struct {
	Status      string             `json:"status"`
	GeneratedAt string             `json:"generated_at"`
	Model       string             `json:"model"`
	Overview    models.DocOverview `json:"overview"`
	Tables      []models.DocTable  `json:"tables"`
}

func (d *DocDocument) Documentation() *models.Documentation {
	return &models.Documentation{
		Overview:    d.Overview,
		Tables:      d.Tables,
		GeneratedAt: d.GeneratedAt,
		Model:       d.Model,
	}
}

type Store struct {
	dataDir string
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// DatabaseDir resolves (and optionally creates) the per-database directory.
func (s *Store) DatabaseDir(database string, create bool) (string, error) {
	dir := filepath.Join(s.dataDir, utils.SlugifyDatabaseName(database))
	if create {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create database dir: %w", err)
		}
	}
	return dir, nil
}

func (s *Store) LoadSchema(database string) (*SchemaDocument, error) {
	var doc SchemaDocument
	if err := s.readJSON(database, SchemaFilename, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) SaveSchema(database string, doc *SchemaDocument) error {
	return s.writeJSON(database, SchemaFilename, doc)
}

func (s *Store) LoadProfiling(database string) (*ProfilingDocument, error) {
	var doc ProfilingDocument
	if err := s.readJSON(database, ProfilingFilename, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) SaveProfiling(database string, doc *ProfilingDocument) error {
	return s.writeJSON(database, ProfilingFilename, doc)
}

func (s *Store) LoadDoc(database string) (*DocDocument, error) {
	var doc DocDocument
	if err := s.readJSON(database, DocFilename, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) SaveDoc(database string, doc *DocDocument) error {
	return s.writeJSON(database, DocFilename, doc)
}

func (s *Store) readJSON(database, filename string, out any) error {
	dir, err := s.DatabaseDir(database, false)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filename)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("document file is empty: %s", path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

func (s *Store) writeJSON(database, filename string, doc any) error {
	dir, err := s.DatabaseDir(database, true)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filename)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
