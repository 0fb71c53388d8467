package validator

// CreateQuestionRequest is the teacher request for adding a multiple-choice
// question. Omitted quizId/subjectId/points/orderNum/correctIndex fall back
// to the historical defaults applied at the handler boundary.
type CreateQuestionRequest struct {
	QuizID       *uint    `json:"quizId"`
	SubjectID    *uint    `json:"subjectId"`
	QuestionText string   `json:"questionText" validate:"required,question_text,max=2000"`
	Points       *int     `json:"points" validate:"omitempty,points_range"`
	OrderNum     *int     `json:"orderNum" validate:"omitempty,order_num"`
	Options      []string `json:"options" validate:"required,min=1"`
	CorrectIndex *int     `json:"correctIndex"`
}

// SaveAnswerRequest records a selected option for a question within an
// attempt. Both ids are mandatory; a missing field is a bad request.
type SaveAnswerRequest struct {
	QuestionID       *uint `json:"questionId" validate:"required"`
	SelectedOptionID *uint `json:"selectedOptionId" validate:"required"`
}

// IdentifyUserRequest resolves or creates a user row. Every field is
// optional; the service fills in generated values.
type IdentifyUserRequest struct {
	ID       *uint  `json:"id"`
	Username string `json:"username" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,max=255"`
	FullName string `json:"fullName" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"omitempty,max=20"`
}
