package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-vyanshuDev/datalens-backend/internal/database"
	"github.com/The-vyanshuDev/datalens-backend/internal/responses"
	"github.com/The-vyanshuDev/datalens-backend/internal/services"
)

type ExtractHandler struct {
	extractService *services.ExtractService
}

func NewExtractHandler(extractService *services.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService}
}

// ExtractSchema handles POST /api/v1/databases/schema/extract
func (h *ExtractHandler) ExtractSchema(c *gin.Context) {
	var params database.ConnectionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid connection parameters")
		return
	}

	doc, err := h.extractService.ExtractSchema(c.Request.Context(), params)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Schema extraction failed")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ExtractProfile handles POST /api/v1/databases/profiling/extract
func (h *ExtractHandler) ExtractProfile(c *gin.Context) {
	var params database.ConnectionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid connection parameters")
		return
	}

	doc, err := h.extractService.ExtractProfile(c.Request.Context(), params)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Data profiling failed")
		return
	}
	c.JSON(http.StatusOK, doc)
}
