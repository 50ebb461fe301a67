package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-vyanshuDev/datalens-backend/internal/export"
	"github.com/The-vyanshuDev/datalens-backend/internal/responses"
	"github.com/The-vyanshuDev/datalens-backend/internal/services"
)

type ExportHandler struct {
	dashboardService *services.DashboardService
}

func NewExportHandler(dashboardService *services.DashboardService) *ExportHandler {
	return &ExportHandler{dashboardService: dashboardService}
}

// Status handles GET /api/v1/databases/:database/export/status
func (h *ExportHandler) Status(c *gin.Context) {
	database := c.Param("database")
	responses.Success(c, http.StatusOK, gin.H{
		"ready": h.dashboardService.ExportReady(database),
	}, "")
}

// JSON handles GET /api/v1/databases/:database/export/json
func (h *ExportHandler) JSON(c *gin.Context) {
	database := c.Param("database")

	filename, content, err := h.dashboardService.ExportJSON(database)
	if err != nil {
		failExport(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", content)
}

// Markdown handles GET /api/v1/databases/:database/export/markdown
func (h *ExportHandler) Markdown(c *gin.Context) {
	database := c.Param("database")

	filename, content, err := h.dashboardService.ExportMarkdown(database)
	if err != nil {
		failExport(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

func failExport(c *gin.Context, err error) {
	if errors.Is(err, export.ErrNotReady) {
		responses.Fail(c, http.StatusConflict, err, "Export unavailable")
		return
	}
	responses.Fail(c, http.StatusInternalServerError, err, "Export failed")
}
