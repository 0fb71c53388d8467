package models

import (
	"time"
)

// ===== RESPONSE DTOs =====

// QuestionResponse is a Question decorated with its subject's display
// attributes, the shape every question listing returns.
type QuestionResponse struct {
	*Question
	SubjectName  string `json:"subjectName,omitempty"`
	SubjectColor string `json:"subjectColor,omitempty"`
}

// AttemptSummary is the teacher-dashboard projection of an attempt with the
// user and quiz metadata attached when those rows resolve.
type AttemptSummary struct {
	AttemptID      uint       `json:"attemptId"`
	QuizID         uint       `json:"quizId"`
	UserID         uint       `json:"userId"`
	Score          *int       `json:"score"`
	TotalQuestions *int       `json:"totalQuestions"`
	CorrectAnswers *int       `json:"correctAnswers"`
	Completed      bool       `json:"completed"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	Username       string     `json:"username,omitempty"`
	Email          string     `json:"email,omitempty"`
	QuizTitle      string     `json:"quizTitle,omitempty"`
}

// ===== ERROR RESPONSES =====

// ErrorResponse is the generic error envelope for unhandled failures.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DuplicateQuestionResponse is the structured 409 body for duplicate
// question-number conflicts, distinguishable from a generic bad request.
type DuplicateQuestionResponse struct {
	Error          string `json:"error"`
	Message        string `json:"message"`
	QuestionNumber string `json:"questionNumber"`
}
