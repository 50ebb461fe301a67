package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/The-vyanshuDev/datalens-backend/internal/config"
	"github.com/The-vyanshuDev/datalens-backend/internal/datastore"
	"github.com/The-vyanshuDev/datalens-backend/internal/export"
	"github.com/The-vyanshuDev/datalens-backend/internal/handlers"
	"github.com/The-vyanshuDev/datalens-backend/internal/middlewares"
	"github.com/The-vyanshuDev/datalens-backend/internal/routes"
	"github.com/The-vyanshuDev/datalens-backend/internal/services"
)

// NewServer wires the document store, services and handlers and returns the
// configured HTTP server.
func NewServer(cfg config.Config, logger *slog.Logger) *http.Server {
	clock := clockwork.NewRealClock()
	store := datastore.New(cfg.DataDir)
	exporter := export.New(cfg.ProjectName, clock)

	// Dependency injection
	extractService := services.NewExtractService(store, clock)
	completer := services.NewAnthropicClient(anthropic.Model(cfg.AnthropicModel), cfg.DocMaxTokens)
	docService := services.NewDocService(store, completer, cfg.AnthropicModel, clock)
	dashboardService := services.NewDashboardService(store, exporter)

	extractHandler := handlers.NewExtractHandler(extractService)
	docHandler := handlers.NewDocHandler(docService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	routes.RegisterRoutes(router, extractHandler, docHandler, dashboardHandler, exportHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
