package services

import (
	"errors"
	"fmt"

	"github.com/The-vyanshuDev/datalens-backend/internal/analytics"
	"github.com/The-vyanshuDev/datalens-backend/internal/datastore"
	"github.com/The-vyanshuDev/datalens-backend/internal/export"
	"github.com/The-vyanshuDev/datalens-backend/internal/graph"
	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

// DashboardService loads the stored documents for a database and runs the
// derived-data pipeline over them. A missing schema document is an error;
// missing profiling or documentation degrades to empty inputs so the
// dashboard stays usable mid-extraction.
type DashboardService struct {
	store    *datastore.Store
	exporter *export.Exporter
}

func NewDashboardService(store *datastore.Store, exporter *export.Exporter) *DashboardService {
	return &DashboardService{store: store, exporter: exporter}
}

// documents is one loaded snapshot; profiling and doc may be empty.
type documents struct {
	schema    []models.SchemaTable
	profiling []models.ProfileRow
	doc       *models.Documentation
}

func (s *DashboardService) load(database string) (documents, error) {
	var docs documents

	schemaDoc, err := s.store.LoadSchema(database)
	if err != nil {
		return docs, fmt.Errorf("load schema document: %w", err)
	}
	docs.schema = schemaDoc.Schema

	profilingDoc, err := s.store.LoadProfiling(database)
	switch {
	case err == nil:
		docs.profiling = profilingDoc.Profile
	case !errors.Is(err, datastore.ErrNotFound):
		return docs, fmt.Errorf("load profiling document: %w", err)
	}

	docDoc, err := s.store.LoadDoc(database)
	switch {
	case err == nil:
		docs.doc = docDoc.Documentation()
	case !errors.Is(err, datastore.ErrNotFound):
		return docs, fmt.Errorf("load doc document: %w", err)
	}

	return docs, nil
}

func (s *DashboardService) Dashboard(database string) (analytics.DashboardData, error) {
	docs, err := s.load(database)
	if err != nil {
		return analytics.DashboardData{}, err
	}
	return analytics.BuildDashboard(docs.schema, docs.profiling, docs.doc, database), nil
}

func (s *DashboardService) ProfilingInsights(database string) (analytics.ProfilingInsights, error) {
	doc, err := s.store.LoadProfiling(database)
	if err != nil {
		return analytics.ProfilingInsights{}, fmt.Errorf("load profiling document: %w", err)
	}
	return analytics.BuildProfilingInsights(doc.Profile), nil
}

func (s *DashboardService) DocInsights(database string) (analytics.DocInsights, error) {
	doc, err := s.store.LoadDoc(database)
	if err != nil {
		return analytics.DocInsights{}, fmt.Errorf("load doc document: %w", err)
	}
	return analytics.BuildDocInsights(doc.Documentation()), nil
}

func (s *DashboardService) Graph(database string) (graph.SchemaGraph, error) {
	doc, err := s.store.LoadSchema(database)
	if err != nil {
		return graph.SchemaGraph{}, fmt.Errorf("load schema document: %w", err)
	}
	return graph.Build(doc.Schema), nil
}

// ExportReady reports whether all three documents are present and non-empty.
func (s *DashboardService) ExportReady(database string) bool {
	docs, err := s.load(database)
	if err != nil {
		return false
	}
	return export.IsReady(docs.schema, docs.profiling, docs.doc)
}

// ExportJSON freezes the current documents and renders the JSON artifact.
func (s *DashboardService) ExportJSON(database string) (filename string, content []byte, err error) {
	payload, err := s.payload(database)
	if err != nil {
		return "", nil, err
	}
	content, err = s.exporter.JSON(payload)
	if err != nil {
		return "", nil, err
	}
	return s.exporter.Filename(database, "json"), content, nil
}

// ExportMarkdown freezes the current documents and renders the Markdown
// artifact.
func (s *DashboardService) ExportMarkdown(database string) (filename string, content string, err error) {
	payload, err := s.payload(database)
	if err != nil {
		return "", "", err
	}
	return s.exporter.Filename(database, "md"), s.exporter.Markdown(payload), nil
}

func (s *DashboardService) payload(database string) (*export.Payload, error) {
	docs, err := s.load(database)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, export.ErrNotReady
		}
		return nil, err
	}
	return s.exporter.NewPayload(database, docs.schema, docs.profiling, docs.doc)
}
