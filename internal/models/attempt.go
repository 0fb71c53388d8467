package models

import (
	"time"
)

// QuizAttempt tracks one user's pass through a quiz. Scoring fields stay nil
// until the attempt is completed; Completed flips false to true exactly once.
type QuizAttempt struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	UserID           uint       `json:"userId" gorm:"not null;index"`
	QuizID           uint       `json:"quizId" gorm:"not null;index"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
	Score            *int       `json:"score"`
	TotalQuestions   *int       `json:"totalQuestions"`
	CorrectAnswers   *int       `json:"correctAnswers"`
	Completed        bool       `json:"completed" gorm:"default:false"`
	TimeSpentSeconds *int       `json:"timeSpentSeconds"`

	// Relations
	Answers []UserAnswer `json:"-" gorm:"foreignKey:QuizAttemptID"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// UserAnswer records the option a user picked for a question. IsCorrect is
// copied from the selected option at write time and never re-validated.
type UserAnswer struct {
	ID               uint `json:"id" gorm:"primaryKey"`
	QuizAttemptID    uint `json:"quizAttemptId" gorm:"not null;index"`
	QuestionID       uint `json:"questionId" gorm:"not null;index"`
	SelectedOptionID uint `json:"selectedOptionId"`
	IsCorrect        bool `json:"isCorrect"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
