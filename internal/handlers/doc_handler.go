package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-vyanshuDev/datalens-backend/internal/datastore"
	"github.com/The-vyanshuDev/datalens-backend/internal/responses"
	"github.com/The-vyanshuDev/datalens-backend/internal/services"
)

type DocHandler struct {
	docService *services.DocService
}

func NewDocHandler(docService *services.DocService) *DocHandler {
	return &DocHandler{docService: docService}
}

type generateDocRequest struct {
	Database string `json:"database" binding:"required"`
}

// GenerateDoc handles POST /api/v1/databases/doc/generate
func (h *DocHandler) GenerateDoc(c *gin.Context) {
	var req generateDocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "database is required")
		return
	}

	doc, err := h.docService.Generate(c.Request.Context(), req.Database)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			responses.Fail(c, http.StatusBadRequest, err, "Extract schema and profiling before generating documentation")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to generate business document")
		return
	}
	c.JSON(http.StatusOK, doc)
}
