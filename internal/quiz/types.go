package quiz

// Feedback messages returned after an answer is recorded.
const (
	FeedbackCorrect         = "Correct!"
	feedbackIncorrectPrefix = "Incorrect. The correct answer is: "
)

// Question is a stored multiple-choice question, correct answer included.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is the full stored quiz. Only returned to the creator.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// PublicQuestion is a question with the correct answer removed.
type PublicQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// RedactedQuiz is the read view handed to quiz takers.
type RedactedQuiz struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Questions []PublicQuestion `json:"questions"`
}

// NewQuestion is the creation payload for a single question.
type NewQuestion struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
}

// NewQuiz is the creation payload for a quiz.
type NewQuiz struct {
	Title     string        `json:"title" yaml:"title"`
	Questions []NewQuestion `json:"questions" yaml:"questions"`
}

// SubmitAnswer carries a single answer for a question of a quiz.
type SubmitAnswer struct {
	QuizID     string `json:"quizId"`
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// AnswerFeedback is returned after an answer is recorded.
type AnswerFeedback struct {
	Feedback      string `json:"feedback"`
	IsCorrect     bool   `json:"isCorrect"`
	QuizID        string `json:"quizId"`
	QuestionID    string `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// AnswerSummary is one per-question line of a score report.
// UserAnswer is nil when the question was never answered.
type AnswerSummary struct {
	QuestionID    string  `json:"questionId"`
	UserAnswer    *string `json:"userAnswer,omitempty"`
	CorrectAnswer string  `json:"correctAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
}

// ScoreReport aggregates correctness for a quiz.
type ScoreReport struct {
	QuizID         string          `json:"quizId"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	AnswerSummary  []AnswerSummary `json:"answerSummary"`
}

// Redact returns a copy of q without correct answers.
func (q Quiz) Redact() RedactedQuiz {
	out := RedactedQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Questions: make([]PublicQuestion, len(q.Questions)),
	}
	for i, question := range q.Questions {
		out.Questions[i] = PublicQuestion{
			ID:       question.ID,
			Question: question.Question,
			Options:  append([]string(nil), question.Options...),
		}
	}
	return out
}

func (q Quiz) clone() Quiz {
	out := Quiz{
		ID:        q.ID,
		Title:     q.Title,
		Questions: make([]Question, len(q.Questions)),
	}
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		out.Questions[i] = question
	}
	return out
}

func (q *Quiz) question(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

func feedbackFor(isCorrect bool, correctAnswer string) string {
	if isCorrect {
		return FeedbackCorrect
	}
	return feedbackIncorrectPrefix + correctAnswer
}
