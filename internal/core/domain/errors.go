package domain

import "errors"

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrChoiceNotFound    = errors.New("choice not found")
	ErrInvalidChoice     = errors.New("invalid choice for this question")
	ErrValidation        = errors.New("validation error")
)
