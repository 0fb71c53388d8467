package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/services"
	"github.com/quizhub-io/quiz-service/internal/utils"
)

// TeacherHandler serves the teacher dashboard: attempt summaries, report
// export and question mutations. Every route behind it runs the teacher
// guard, so the actor user is always present in the gin context.
type TeacherHandler struct {
	BaseHandler
	quizService     services.QuizService
	questionService services.QuestionService
	exportService   services.ExportService
}

func NewTeacherHandler(quizService services.QuizService, questionService services.QuestionService, exportService services.ExportService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:     NewBaseHandler(logger),
		quizService:     quizService,
		questionService: questionService,
		exportService:   exportService,
	}
}

func actorID(c *gin.Context) uint {
	if v, ok := c.Get(ContextActorKey); ok {
		if user, ok := v.(*models.User); ok {
			return user.ID
		}
	}
	return 0
}

// ListAttempts handles GET /api/teacher/attempts?userId=
func (h *TeacherHandler) ListAttempts(c *gin.Context) {
	summaries, err := h.quizService.AttemptSummaries(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// ExportAttempts handles GET /api/teacher/attempts/export?userId= and streams
// the summaries as an xlsx workbook.
func (h *TeacherHandler) ExportAttempts(c *gin.Context) {
	f, err := h.exportService.AttemptSummariesWorkbook(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("quiz-attempts-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		h.LogError(c, "failed to stream workbook", err)
	}
}

// CreateQuestion handles POST /api/teacher/questions?userId=
func (h *TeacherHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "invalid request body: " + err.Error(),
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "question created", "question_id", question.ID, "actor_id", actorID(c))
	c.JSON(http.StatusCreated, question)
}

// DeleteQuestion handles DELETE /api/teacher/questions/:id?userId=&byOrderNum=
// With byOrderNum=true the id is treated as an order number and every
// question carrying it is removed.
func (h *TeacherHandler) DeleteQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var (
		deleted bool
		err     error
	)
	if c.Query("byOrderNum") == "true" {
		deleted, err = h.questionService.DeleteByOrderNum(c.Request.Context(), int(id), actorID(c))
	} else {
		deleted, err = h.questionService.Delete(c.Request.Context(), id, actorID(c))
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}

	h.LogRequest(c, "question deleted", "id", id, "actor_id", actorID(c))
	c.Status(http.StatusNoContent)
}
