package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// ViewHandler serves the session's current screen and moves between screens.
type ViewHandler struct {
	nav     *app.Navigator
	library *app.LibraryService
}

// NewViewHandler creates a view handler.
func NewViewHandler(nav *app.Navigator, library *app.LibraryService) *ViewHandler {
	return &ViewHandler{nav: nav, library: library}
}

// screen renders a screen state together with the collection it reads from.
func screen(ctx context.Context, library *app.LibraryService, s domain.ScreenState) (dto.Screen, error) {
	c, err := library.Collection(ctx)
	if err != nil {
		return dto.Screen{}, err
	}

	return dto.FromScreen(s, c), nil
}

func (h *ViewHandler) respond(c *gin.Context, s domain.ScreenState, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out, err := screen(c.Request.Context(), h.library, s)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetView handles GET /api/v1/view.
func (h *ViewHandler) GetView(c *gin.Context) {
	s, err := h.nav.Current(c.Request.Context())
	h.respond(c, s, err)
}

// Home handles POST /api/v1/view/home.
func (h *ViewHandler) Home(c *gin.Context) {
	s, err := h.nav.Home(c.Request.Context())
	h.respond(c, s, err)
}

// Back handles POST /api/v1/view/back.
func (h *ViewHandler) Back(c *gin.Context) {
	s, err := h.nav.Back(c.Request.Context())
	h.respond(c, s, err)
}

// Dashboard handles POST /api/v1/view/dashboard.
func (h *ViewHandler) Dashboard(c *gin.Context) {
	s, err := h.nav.Dashboard(c.Request.Context())
	h.respond(c, s, err)
}

// OpenSubject handles POST /api/v1/view/subjects/:subject.
func (h *ViewHandler) OpenSubject(c *gin.Context) {
	s, err := h.nav.OpenSubject(c.Request.Context(), c.Param("subject"))
	h.respond(c, s, err)
}

// Reset handles POST /api/v1/view/reset.
func (h *ViewHandler) Reset(c *gin.Context) {
	h.respond(c, h.nav.Reset(c.Request.Context()), nil)
}

// RegisterViewRoutes registers navigation routes on the given router group.
func (h *ViewHandler) RegisterViewRoutes(rg *gin.RouterGroup) {
	view := rg.Group("/view")
	view.GET("", h.GetView)
	view.POST("/home", h.Home)
	view.POST("/back", h.Back)
	view.POST("/dashboard", h.Dashboard)
	view.POST("/subjects/:subject", h.OpenSubject)
	view.POST("/reset", h.Reset)
}
