package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuiz      = errors.New("invalid quiz")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrDuplicateID      = errors.New("generated quiz id already in use")
)

// ValidationError reports the first field that failed creation checks.
// It unwraps to ErrInvalidQuiz.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuiz
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate runs the required-field checks applied by Store.Create.
// Options are not checked against the correct answer.
func (n NewQuiz) Validate() error {
	if n.Title == "" {
		return invalid("title", "Title and questions are required")
	}
	if len(n.Questions) == 0 {
		return invalid("questions", "Title and questions are required")
	}
	for i, q := range n.Questions {
		if q.Question == "" {
			return invalid(fmt.Sprintf("questions[%d].question", i), "Question must not be empty")
		}
		if len(q.Options) == 0 {
			return invalid(fmt.Sprintf("questions[%d].options", i), "Options must not be empty")
		}
		if q.CorrectAnswer == "" {
			return invalid(fmt.Sprintf("questions[%d].correctAnswer", i), "Correct answer must not be empty")
		}
	}
	return nil
}
