package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound         = "not_found"
	ErrCodeQuizNotFound     = "quiz_not_found"
	ErrCodeQuestionNotFound = "question_not_found"

	// WebSocket errors
	ErrCodeUpgradeFailed = "upgrade_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
