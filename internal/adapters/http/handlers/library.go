package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
)

// LibraryHandler serves reads and edits of the collection.
type LibraryHandler struct {
	service *app.LibraryService
}

// NewLibraryHandler creates a library handler.
func NewLibraryHandler(service *app.LibraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// GetCollection handles GET /api/v1/collection.
func (h *LibraryHandler) GetCollection(c *gin.Context) {
	col, err := h.service.Collection(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCollection(col))
}

// GetSubject handles GET /api/v1/subjects/:subject.
func (h *LibraryHandler) GetSubject(c *gin.Context) {
	subject, err := h.service.Subject(c.Request.Context(), c.Param("subject"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSubject(subject))
}

// DeleteSubject handles DELETE /api/v1/subjects/:subject?confirm=.
// Without confirm the request is a 409 and nothing is deleted.
func (h *LibraryHandler) DeleteSubject(c *gin.Context) {
	confirmer, err := queryConfirmer(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	outcome, err := h.service.DeleteSubject(c.Request.Context(), c.Param("subject"), confirmer)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OutcomeResponse{Outcome: string(outcome)})
}

// GetTopic handles GET /api/v1/subjects/:subject/topics/:topic.
func (h *LibraryHandler) GetTopic(c *gin.Context) {
	topic, err := h.service.Topic(c.Request.Context(), c.Param("subject"), c.Param("topic"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTopic(topic))
}

// PutTopic handles PUT /api/v1/subjects/:subject/topics/:topic. The body's
// cards replace the topic's cards; missing levels are created.
func (h *LibraryHandler) PutTopic(c *gin.Context) {
	var req dto.UpsertTopicRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	topic, err := h.service.UpsertTopic(c.Request.Context(), c.Param("subject"), c.Param("topic"), dto.ToCards(req.Cards))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTopic(topic))
}

// DeleteTopic handles DELETE /api/v1/subjects/:subject/topics/:topic.
func (h *LibraryHandler) DeleteTopic(c *gin.Context) {
	if err := h.service.DeleteTopic(c.Request.Context(), c.Param("subject"), c.Param("topic")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterLibraryRoutes registers library routes on the given router group.
func (h *LibraryHandler) RegisterLibraryRoutes(rg *gin.RouterGroup) {
	rg.GET("/collection", h.GetCollection)

	subjects := rg.Group("/subjects/:subject")
	subjects.GET("", h.GetSubject)
	subjects.DELETE("", h.DeleteSubject)
	subjects.GET("/topics/:topic", h.GetTopic)
	subjects.PUT("/topics/:topic", h.PutTopic)
	subjects.DELETE("/topics/:topic", h.DeleteTopic)
}
