package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
)

// TransferHandler serves imports and exports in the interchange format.
// Import bodies are the raw interchange documents.
type TransferHandler struct {
	service *app.TransferService
}

// NewTransferHandler creates a transfer handler.
func NewTransferHandler(service *app.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

// ImportCollection handles POST /api/v1/import. The body replaces the
// whole collection.
func (h *TransferHandler) ImportCollection(c *gin.Context) {
	result, err := h.service.ImportCollection(c.Request.Context(), c.Request.Body)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromImportResult(result))
}

// ImportSubject handles POST /api/v1/import/subject?confirm=.
func (h *TransferHandler) ImportSubject(c *gin.Context) {
	confirmer, err := queryConfirmer(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.service.ImportSubject(c.Request.Context(), c.Request.Body, confirmer)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromImportResult(result))
}

// ImportTopic handles POST /api/v1/import/subjects/:subject/topic?confirm=.
func (h *TransferHandler) ImportTopic(c *gin.Context) {
	confirmer, err := queryConfirmer(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.service.ImportTopic(c.Request.Context(), c.Param("subject"), c.Request.Body, confirmer)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromImportResult(result))
}

// ExportCollection handles GET /api/v1/export.
func (h *TransferHandler) ExportCollection(c *gin.Context) {
	h.send(c)(h.service.ExportCollection(c.Request.Context()))
}

// ExportSubject handles GET /api/v1/export/subjects/:subject.
func (h *TransferHandler) ExportSubject(c *gin.Context) {
	h.send(c)(h.service.ExportSubject(c.Request.Context(), c.Param("subject")))
}

// ExportTopic handles GET /api/v1/export/subjects/:subject/topics/:topic.
func (h *TransferHandler) ExportTopic(c *gin.Context) {
	h.send(c)(h.service.ExportTopic(c.Request.Context(), c.Param("subject"), c.Param("topic")))
}

// send writes an artifact as a file download.
func (h *TransferHandler) send(c *gin.Context) func(app.Artifact, error) {
	return func(a app.Artifact, err error) {
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
		c.Data(http.StatusOK, a.ContentType, a.Body)
	}
}

// RegisterTransferRoutes registers import and export routes on the given router group.
func (h *TransferHandler) RegisterTransferRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	imports.POST("", h.ImportCollection)
	imports.POST("/subject", h.ImportSubject)
	imports.POST("/subjects/:subject/topic", h.ImportTopic)

	exports := rg.Group("/export")
	exports.GET("", h.ExportCollection)
	exports.GET("/subjects/:subject", h.ExportSubject)
	exports.GET("/subjects/:subject/topics/:topic", h.ExportTopic)
}
