package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/services"
	"github.com/quizhub-io/quiz-service/internal/utils"
)

// BaseHandler carries the shared logging and error-translation helpers every
// concrete handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append([]any{"error", err}, args...)...)
}

// parseIDParam reads a positive integer path parameter; a non-numeric value
// aborts with 400.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "invalid " + name + " parameter: " + raw,
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError translates service-layer errors to HTTP responses.
// Not-found maps to an empty 404 body.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var dup *services.DuplicateQuestionNumberError
	var perm *services.PermissionError
	var verr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAttemptNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, models.DuplicateQuestionResponse{
			Error:          "duplicate_question_number",
			Message:        dup.Message,
			QuestionNumber: strconv.Itoa(dup.OrderNum),
		})
	case errors.As(err, &perm):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status:    http.StatusForbidden,
			Error:     "Forbidden",
			Message:   perm.Reason,
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   verr.Message,
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
	default:
		h.LogError(c, "unhandled service error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
	}
}
