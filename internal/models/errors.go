package models

import "errors"

// Error constants for the email registry and survey operations
var (
	ErrEmailRequired         = errors.New("email is required")
	ErrEmailDomainNotAllowed = errors.New("email domain not allowed")
	ErrEmailAlreadyUsed      = errors.New("email already used")
	ErrDuplicateEmail        = errors.New("duplicate email hash")
	ErrSurveyFieldsRequired  = errors.New("period and responses are required")
	ErrInvalidResetType      = errors.New("invalid reset type")
	ErrInvalidCredentials    = errors.New("invalid researcher credentials")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrListResponsesFailed   = errors.New("failed to list survey responses")
	ErrCountEmailsFailed     = errors.New("failed to count used emails")
	ErrResetEmailsFailed     = errors.New("failed to reset used emails")
	ErrResetResponsesFailed  = errors.New("failed to reset survey responses")
)
