package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-vyanshuDev/datalens-backend/internal/handlers"
)

func RegisterRoutes(
	router *gin.Engine,
	extractHandler *handlers.ExtractHandler,
	docHandler *handlers.DocHandler,
	dashboardHandler *handlers.DashboardHandler,
	exportHandler *handlers.ExportHandler,
) {
	api := router.Group("/api/v1")

	databaseRoutes := NewDatabaseRoutes(extractHandler, docHandler, dashboardHandler, exportHandler)
	databaseRoutes.RegisterRoutes(api)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
