package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-vyanshuDev/datalens-backend/internal/datastore"
	"github.com/The-vyanshuDev/datalens-backend/internal/responses"
	"github.com/The-vyanshuDev/datalens-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dashboard handles GET /api/v1/databases/:database/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	database := c.Param("database")

	data, err := h.dashboardService.Dashboard(database)
	if err != nil {
		failLoad(c, err, "Failed to build dashboard")
		return
	}
	responses.Success(c, http.StatusOK, data, "")
}

// ProfilingInsights handles GET /api/v1/databases/:database/insights/profiling
func (h *DashboardHandler) ProfilingInsights(c *gin.Context) {
	database := c.Param("database")

	insights, err := h.dashboardService.ProfilingInsights(database)
	if err != nil {
		failLoad(c, err, "Failed to build profiling insights")
		return
	}
	responses.Success(c, http.StatusOK, insights, "")
}

// DocInsights handles GET /api/v1/databases/:database/insights/doc
func (h *DashboardHandler) DocInsights(c *gin.Context) {
	database := c.Param("database")

	insights, err := h.dashboardService.DocInsights(database)
	if err != nil {
		failLoad(c, err, "Failed to build documentation insights")
		return
	}
	responses.Success(c, http.StatusOK, insights, "")
}

// Graph handles GET /api/v1/databases/:database/graph
func (h *DashboardHandler) Graph(c *gin.Context) {
	database := c.Param("database")

	g, err := h.dashboardService.Graph(database)
	if err != nil {
		failLoad(c, err, "Failed to build schema graph")
		return
	}
	responses.Success(c, http.StatusOK, g, "")
}

// failLoad maps a missing document to 404 and everything else to 500.
func failLoad(c *gin.Context, err error, message string) {
	if errors.Is(err, datastore.ErrNotFound) {
		responses.Fail(c, http.StatusNotFound, err, message)
		return
	}
	responses.Fail(c, http.StatusInternalServerError, err, message)
}
