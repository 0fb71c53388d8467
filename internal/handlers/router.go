package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
	"github.com/quizhub-io/quiz-service/internal/services"
	"github.com/quizhub-io/quiz-service/internal/utils"
)

// HandlerManager owns the HTTP handlers and knows how to mount them on a gin
// engine.
type HandlerManager struct {
	quizHandler    *QuizHandler
	teacherHandler *TeacherHandler
	userHandler    *UserHandler

	serviceManager services.ServiceManager
	repo           repositories.Repository
	logger         utils.Logger
}

func NewHandlerManager(sm services.ServiceManager, repo repositories.Repository, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		quizHandler:    NewQuizHandler(sm.Quiz(), logger),
		teacherHandler: NewTeacherHandler(sm.Quiz(), sm.Question(), sm.Export(), logger),
		userHandler:    NewUserHandler(sm.User(), logger),
		serviceManager: sm,
		repo:           repo,
		logger:         logger,
	}
}

// SetupRoutes mounts middleware and all API routes. Quiz routes share the
// :id parameter name because gin requires one name per path position.
func (m *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(RequestIDMiddleware())
	router.Use(utils.ContextLogger(m.logger))
	router.Use(utils.LoggerMiddleware(m.logger))
	router.Use(CORSMiddleware())
	router.Use(SecurityMiddleware())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:    http.StatusNotFound,
			Error:     "Not Found",
			Message:   "no handler for " + c.Request.Method + " " + c.Request.URL.Path,
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
	})

	router.GET("/health", m.healthCheck)

	api := router.Group("/api")

	quiz := api.Group("/quiz")
	{
		quiz.GET("", m.quizHandler.ListQuizzes)
		quiz.GET("/subjects", m.quizHandler.ListSubjects)
		quiz.GET("/:id", m.quizHandler.GetQuiz)
		quiz.GET("/:id/questions", m.quizHandler.GetQuestions)
		quiz.POST("/:id/start", m.quizHandler.StartAttempt)
		quiz.GET("/questions/:questionId/options", m.quizHandler.GetOptions)
		quiz.POST("/attempts/:attemptId/answer", m.quizHandler.SaveAnswer)
		quiz.POST("/attempts/:attemptId/complete", m.quizHandler.CompleteAttempt)
	}

	teacher := api.Group("/teacher")
	teacher.Use(RequireTeacher(m.repo, m.logger))
	{
		teacher.GET("/attempts", m.teacherHandler.ListAttempts)
		teacher.GET("/attempts/export", m.teacherHandler.ExportAttempts)
		teacher.POST("/questions", m.teacherHandler.CreateQuestion)
		teacher.DELETE("/questions/:id", m.teacherHandler.DeleteQuestion)
	}

	users := api.Group("/users")
	{
		users.POST("/identify", m.userHandler.Identify)
	}
}

func (m *HandlerManager) healthCheck(c *gin.Context) {
	if err := m.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
		"time":    time.Now().UTC(),
	})
}
