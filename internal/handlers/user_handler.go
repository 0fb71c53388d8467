package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/services"
	"github.com/quizhub-io/quiz-service/internal/utils"
)

// UserHandler serves the anonymous identify flow.
type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// Identify handles POST /api/users/identify. It resolves an existing user by
// id, email or username, creating one when nothing matches. An absent role
// defaults to student.
func (h *UserHandler) Identify(c *gin.Context) {
	var req services.IdentifyUserRequest
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
	if req.Role == "" {
		req.Role = string(models.RoleStudent)
	}

	user, err := h.userService.Identify(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "user identified", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, user)
}
