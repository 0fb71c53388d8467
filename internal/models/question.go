package models

import (
	"time"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionShortAnswer    QuestionType = "SHORT_ANSWER"
)

// Question rows carry a deliberate identity convention: the primary key is
// always set equal to OrderNum at creation time, so the teacher-facing
// question number doubles as the storage id. OrderNum uniqueness is enforced
// by the creation path, not by a schema constraint.
type Question struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	QuizID       uint         `json:"quizId" gorm:"not null;index"`
	SubjectID    uint         `json:"subjectId" gorm:"not null;index"`
	QuestionText string       `json:"questionText" gorm:"type:text;not null"`
	QuestionType QuestionType `json:"questionType" gorm:"size:20;default:MULTIPLE_CHOICE"`
	Points       int          `json:"points" gorm:"default:1"`
	OrderNum     int          `json:"orderNum" gorm:"not null;index"`
	CreatedAt    time.Time    `json:"createdAt"`

	// Relations
	Options []QuestionOption `json:"-" gorm:"foreignKey:QuestionID"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionOption struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"questionId" gorm:"not null;index"`
	OptionText string `json:"optionText" gorm:"type:text;not null"`
	IsCorrect  bool   `json:"isCorrect" gorm:"default:false"`
	OrderNum   int    `json:"orderNum"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
