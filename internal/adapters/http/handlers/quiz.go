package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// QuizHandler serves the quiz runner.
type QuizHandler struct {
	service *app.QuizService
	library *app.LibraryService
}

// NewQuizHandler creates a quiz handler.
func NewQuizHandler(service *app.QuizService, library *app.LibraryService) *QuizHandler {
	return &QuizHandler{service: service, library: library}
}

func respondQuiz(c *gin.Context, q domain.QuizSession, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuiz(q, false))
}

// Start handles POST /api/v1/quiz.
func (h *QuizHandler) Start(c *gin.Context) {
	var req dto.StartQuizRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	q, err := h.service.Start(c.Request.Context(), req.Subject, req.Topic, domain.Screen(req.From))
	respondQuiz(c, q, err)
}

// Get handles GET /api/v1/quiz.
func (h *QuizHandler) Get(c *gin.Context) {
	q, err := h.service.Current(c.Request.Context())
	respondQuiz(c, q, err)
}

// Reveal handles POST /api/v1/quiz/reveal.
func (h *QuizHandler) Reveal(c *gin.Context) {
	q, err := h.service.Reveal(c.Request.Context())
	respondQuiz(c, q, err)
}

// Respond handles POST /api/v1/quiz/response. The text is kept for display
// and never graded.
func (h *QuizHandler) Respond(c *gin.Context) {
	var req dto.QuizResponseRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	q, err := h.service.Respond(c.Request.Context(), req.Text)
	respondQuiz(c, q, err)
}

// Next handles POST /api/v1/quiz/next. On the last card the quiz finishes
// and the response carries the screen it returned to.
func (h *QuizHandler) Next(c *gin.Context) {
	ctx := c.Request.Context()

	step, err := h.service.Next(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	out, err := screen(ctx, h.library, step.Screen)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuizStepResponse{
		Quiz:   dto.FromQuiz(step.Session, step.Finished),
		Screen: out,
	})
}

// Exit handles POST /api/v1/quiz/exit.
func (h *QuizHandler) Exit(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.service.Exit(ctx)
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

// RegisterQuizRoutes registers quiz routes on the given router group.
func (h *QuizHandler) RegisterQuizRoutes(rg *gin.RouterGroup) {
	quiz := rg.Group("/quiz")
	quiz.POST("", h.Start)
	quiz.GET("", h.Get)
	quiz.POST("/reveal", h.Reveal)
	quiz.POST("/response", h.Respond)
	quiz.POST("/next", h.Next)
	quiz.POST("/exit", h.Exit)
}
