package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
	"github.com/quizhub-io/quiz-service/internal/utils"
)

const (
	RequestIDHeader = "X-Request-ID"
	ContextActorKey = "actor"
)

// RequestIDMiddleware tags each request with an id, reusing the inbound
// header when the caller already set one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// CORSMiddleware allows browser clients from any origin. The API carries no
// cookies, so a wildcard origin is safe here.
func CORSMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	config.MaxAge = 12 * time.Hour
	return cors.New(config)
}

func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Next()
	}
}

// RequireTeacher resolves the userId query parameter to a user row and aborts
// with 403 unless that user holds the teacher role. Missing or non-numeric
// userId aborts with 400.
func RequireTeacher(repo repositories.Repository, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("userId")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Status:    http.StatusBadRequest,
				Error:     "Bad Request",
				Message:   "userId query parameter is required",
				Path:      c.Request.URL.Path,
				Timestamp: time.Now().UTC(),
			})
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Status:    http.StatusBadRequest,
				Error:     "Bad Request",
				Message:   "invalid userId: " + raw,
				Path:      c.Request.URL.Path,
				Timestamp: time.Now().UTC(),
			})
			return
		}

		user, err := repo.User().GetByID(c.Request.Context(), nil, uint(userID))
		if err != nil || user == nil || user.Role != models.RoleTeacher {
			if err != nil && !repositories.IsNotFoundError(err) {
				utils.FromContext(c, logger).Error("teacher guard lookup failed", "error", err, "user_id", userID)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Status:    http.StatusForbidden,
				Error:     "Forbidden",
				Message:   "teacher role required",
				Path:      c.Request.URL.Path,
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.Set(ContextActorKey, user)
		c.Next()
	}
}
