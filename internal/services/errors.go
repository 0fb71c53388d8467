package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrUserNotFound     = errors.New("user not found")
)

// DuplicateQuestionNumberError signals that the requested question number is
// already taken, either as an order number or as a question id. It carries
// the number so the API can return a structured conflict body.
type DuplicateQuestionNumberError struct {
	OrderNum int
	Message  string
}

func (e *DuplicateQuestionNumberError) Error() string {
	return e.Message
}

func NewDuplicateOrderNumError(orderNum int) *DuplicateQuestionNumberError {
	return &DuplicateQuestionNumberError{
		OrderNum: orderNum,
		Message:  fmt.Sprintf("Question number %d already exists. Please use a different number.", orderNum),
	}
}

func NewDuplicateIDError(orderNum int) *DuplicateQuestionNumberError {
	return &DuplicateQuestionNumberError{
		OrderNum: orderNum,
		Message:  fmt.Sprintf("Question with ID %d already exists. Please use a different number.", orderNum),
	}
}

// PermissionError signals a role-guard failure.
type PermissionError struct {
	UserID uint
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d may not %s: %s", e.UserID, e.Action, e.Reason)
}

func NewPermissionError(userID uint, action, reason string) *PermissionError {
	return &PermissionError{
		UserID: userID,
		Action: action,
		Reason: reason,
	}
}

// ValidationError signals malformed or missing request input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
