package models

import (
	"time"
)

type Quiz struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"not null;size:200"`
	Description    string    `json:"description" gorm:"type:text"`
	TimeLimit      int       `json:"timeLimit"` // minutes
	TotalQuestions int       `json:"totalQuestions"`
	Difficulty     string    `json:"difficulty" gorm:"size:20"`
	Active         bool      `json:"active" gorm:"default:true"`
	Password       string    `json:"-" gorm:"size:100"`
	CreatedAt      time.Time `json:"createdAt"`

	// Relations
	Questions []Question    `json:"-" gorm:"foreignKey:QuizID"`
	Subjects  []QuizSubject `json:"-" gorm:"foreignKey:QuizID"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizSubject links a quiz to a subject with the number of questions drawn from it.
type QuizSubject struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	QuizID        uint `json:"quizId" gorm:"not null;index"`
	SubjectID     uint `json:"subjectId" gorm:"not null;index"`
	QuestionCount int  `json:"questionCount"`
}

func (QuizSubject) TableName() string {
	return "quiz_subjects"
}
