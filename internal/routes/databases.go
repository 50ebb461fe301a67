package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/The-vyanshuDev/datalens-backend/internal/handlers"
)

type DatabaseRoutes struct {
	extractHandler   *handlers.ExtractHandler
	docHandler       *handlers.DocHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
}

func NewDatabaseRoutes(
	extractHandler *handlers.ExtractHandler,
	docHandler *handlers.DocHandler,
	dashboardHandler *handlers.DashboardHandler,
	exportHandler *handlers.ExportHandler,
) *DatabaseRoutes {
	return &DatabaseRoutes{
		extractHandler:   extractHandler,
		docHandler:       docHandler,
		dashboardHandler: dashboardHandler,
		exportHandler:    exportHandler,
	}
}

func (r *DatabaseRoutes) RegisterRoutes(router *gin.RouterGroup) {
	databases := router.Group("/databases")
	{
		databases.POST("/schema/extract", r.extractHandler.ExtractSchema)
		databases.POST("/profiling/extract", r.extractHandler.ExtractProfile)
		databases.POST("/doc/generate", r.docHandler.GenerateDoc)

		databases.GET("/:database/dashboard", r.dashboardHandler.Dashboard)
		databases.GET("/:database/insights/profiling", r.dashboardHandler.ProfilingInsights)
		databases.GET("/:database/insights/doc", r.dashboardHandler.DocInsights)
		databases.GET("/:database/graph", r.dashboardHandler.Graph)

		databases.GET("/:database/export/status", r.exportHandler.Status)
		databases.GET("/:database/export/json", r.exportHandler.JSON)
		databases.GET("/:database/export/markdown", r.exportHandler.Markdown)
	}
}
