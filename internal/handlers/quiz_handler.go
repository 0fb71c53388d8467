package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/services"
	"github.com/quizhub-io/quiz-service/internal/utils"
)

// QuizHandler serves the public quiz catalogue and the attempt lifecycle.
type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// ListQuizzes handles GET /api/quiz
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz handles GET /api/quiz/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// GetQuestions handles GET /api/quiz/:id/questions
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	quizID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.quizService.GetQuestionsByQuiz(c.Request.Context(), quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetOptions handles GET /api/quiz/questions/:questionId/options
func (h *QuizHandler) GetOptions(c *gin.Context) {
	questionID, ok := h.parseIDParam(c, "questionId")
	if !ok {
		return
	}

	options, err := h.quizService.GetOptionsForQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// ListSubjects handles GET /api/quiz/subjects
func (h *QuizHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.quizService.ListSubjects(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// StartAttempt handles POST /api/quiz/:id/start?userId=
func (h *QuizHandler) StartAttempt(c *gin.Context) {
	quizID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	rawUser := c.Query("userId")
	userID, err := strconv.ParseUint(rawUser, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "userId query parameter is required",
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	attempt, err := h.quizService.StartAttempt(c.Request.Context(), quizID, uint(userID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "quiz attempt started", "quiz_id", quizID, "user_id", userID, "attempt_id", attempt.ID)
	c.JSON(http.StatusCreated, attempt)
}

// SaveAnswer handles POST /api/quiz/attempts/:attemptId/answer
func (h *QuizHandler) SaveAnswer(c *gin.Context) {
	attemptID, ok := h.parseIDParam(c, "attemptId")
	if !ok {
		return
	}

	var req services.SaveAnswerRequest
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

	answer, err := h.quizService.SaveAnswer(c.Request.Context(), attemptID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// CompleteAttempt handles POST /api/quiz/attempts/:attemptId/complete
func (h *QuizHandler) CompleteAttempt(c *gin.Context) {
	attemptID, ok := h.parseIDParam(c, "attemptId")
	if !ok {
		return
	}

	attempt, err := h.quizService.CompleteAttempt(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "quiz attempt completed", "attempt_id", attemptID, "score", attempt.Score)
	c.JSON(http.StatusOK, attempt)
}
