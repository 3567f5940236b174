package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// BuilderHandler serves the stack editor.
type BuilderHandler struct {
	service *app.BuilderService
	library *app.LibraryService
}

// NewBuilderHandler creates a builder handler.
func NewBuilderHandler(service *app.BuilderService, library *app.LibraryService) *BuilderHandler {
	return &BuilderHandler{service: service, library: library}
}

func respondBuilder(c *gin.Context, b domain.BuilderState, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBuilder(b))
}

// cardIndex reads the :index path parameter.
func cardIndex(c *gin.Context) (int, error) {
	raw := c.Param("index")

	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationErrorWithValue("index", "must be a number", raw)
	}

	return i, nil
}

// Get handles GET /api/v1/builder.
func (h *BuilderHandler) Get(c *gin.Context) {
	b, err := h.service.Current(c.Request.Context())
	respondBuilder(c, b, err)
}

// Open handles POST /api/v1/builder. An empty body opens from the current screen.
func (h *BuilderHandler) Open(c *gin.Context) {
	var req dto.OpenBuilderRequest
	if c.Request.ContentLength != 0 {
		if err := dto.BindAndValidate(c, &req); err != nil {
			dto.HandleBindError(c, err)
			return
		}
	}

	b, err := h.service.Open(c.Request.Context(), domain.Screen(req.From))
	respondBuilder(c, b, err)
}

// EditStack handles POST /api/v1/builder/stacks/:subject/:topic.
func (h *BuilderHandler) EditStack(c *gin.Context) {
	b, err := h.service.EditStack(c.Request.Context(), c.Param("subject"), c.Param("topic"))
	respondBuilder(c, b, err)
}

// SetFields handles PATCH /api/v1/builder.
func (h *BuilderHandler) SetFields(c *gin.Context) {
	var req dto.SetFieldsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	fields := domain.DraftFields{
		Subject:  req.Subject,
		Topic:    req.Topic,
		Question: req.Question,
		Answer:   req.Answer,
	}

	if req.Type != nil {
		t, err := domain.ParseCardType(*req.Type)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		fields.Type = &t
	}

	b, err := h.service.SetFields(c.Request.Context(), fields)
	respondBuilder(c, b, err)
}

// AddCard handles POST /api/v1/builder/cards.
func (h *BuilderHandler) AddCard(c *gin.Context) {
	b, err := h.service.AddCard(c.Request.Context())
	respondBuilder(c, b, err)
}

// EditCard handles POST /api/v1/builder/cards/:index/edit.
func (h *BuilderHandler) EditCard(c *gin.Context) {
	i, err := cardIndex(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	b, err := h.service.EditCard(c.Request.Context(), i)
	respondBuilder(c, b, err)
}

// DeleteCard handles DELETE /api/v1/builder/cards/:index.
func (h *BuilderHandler) DeleteCard(c *gin.Context) {
	i, err := cardIndex(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	b, err := h.service.DeleteCard(c.Request.Context(), i)
	respondBuilder(c, b, err)
}

// Save handles POST /api/v1/builder/save.
func (h *BuilderHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := h.service.SaveStack(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out, err := screen(ctx, h.library, domain.DashboardState{})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SavedStackResponse{Subject: ref.Subject, Topic: ref.Topic, Screen: out})
}

// Cancel handles POST /api/v1/builder/cancel.
func (h *BuilderHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.service.Cancel(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out, err := screen(ctx, h.library, s)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// RegisterBuilderRoutes registers stack editor routes on the given router group.
func (h *BuilderHandler) RegisterBuilderRoutes(rg *gin.RouterGroup) {
	builder := rg.Group("/builder")
	builder.GET("", h.Get)
	builder.POST("", h.Open)
	builder.PATCH("", h.SetFields)
	builder.POST("/stacks/:subject/:topic", h.EditStack)
	builder.POST("/cards", h.AddCard)
	builder.POST("/cards/:index/edit", h.EditCard)
	builder.DELETE("/cards/:index", h.DeleteCard)
	builder.POST("/save", h.Save)
	builder.POST("/cancel", h.Cancel)
}
