package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is the in-memory owner of quizzes and recorded answers.
// Answers are keyed by quiz and question only; a later submission replaces an earlier one.
type Store struct {
	mu      sync.RWMutex
	quizzes map[string]*Quiz
	answers map[string]map[string]string // quiz_id -> question_id -> answer

	newID  func() string
	logger zerolog.Logger
}

// StoreOptions tweaks store construction. The zero value is ready for production.
type StoreOptions struct {
	// NewID overrides identifier generation (defaults to random UUIDv4).
	// A quiz id it repeats is rejected with ErrDuplicateID.
	NewID func() string
}

// NewStore creates an empty store.
func NewStore(logger zerolog.Logger, opts StoreOptions) *Store {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{
		quizzes: make(map[string]*Quiz),
		answers: make(map[string]map[string]string),
		newID:   newID,
		logger:  logger.With().Str("component", "quiz_store").Logger(),
	}
}

// Create validates and stores a quiz, assigning fresh ids to it and every question.
// The returned quiz includes correct answers.
func (s *Store) Create(ctx context.Context, in NewQuiz) (Quiz, error) {
	if err := in.Validate(); err != nil {
		return Quiz{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if _, taken := s.quizzes[id]; taken {
		s.logger.Error().Str("quiz_id", id).Msg("id generator repeated a quiz id")
		return Quiz{}, fmt.Errorf("create quiz %q: %w", id, ErrDuplicateID)
	}

	qz := &Quiz{
		ID:        id,
		Title:     in.Title,
		Questions: make([]Question, len(in.Questions)),
	}
	for i, q := range in.Questions {
		qz.Questions[i] = Question{
			ID:            s.newID(),
			Question:      q.Question,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	s.quizzes[qz.ID] = qz

	s.logger.Debug().
		Str("quiz_id", qz.ID).
		Int("questions", len(qz.Questions)).
		Msg("quiz created")

	return qz.clone(), nil
}

// Get returns the quiz without correct answers.
func (s *Store) Get(ctx context.Context, quizID string) (RedactedQuiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qz, err := s.lookup(quizID)
	if err != nil {
		return RedactedQuiz{}, err
	}
	return qz.Redact(), nil
}

// Exists reports whether a quiz with the given id is stored.
func (s *Store) Exists(quizID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.quizzes[quizID]
	return ok
}

// RecordAnswer stores the answer for a question, overwriting any earlier one,
// and reports whether it matches the correct answer exactly.
func (s *Store) RecordAnswer(ctx context.Context, in SubmitAnswer) (AnswerFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qz, err := s.lookup(in.QuizID)
	if err != nil {
		return AnswerFeedback{}, err
	}
	question, ok := qz.question(in.QuestionID)
	if !ok {
		return AnswerFeedback{}, ErrQuestionNotFound
	}

	byQuestion, ok := s.answers[in.QuizID]
	if !ok {
		byQuestion = make(map[string]string)
		s.answers[in.QuizID] = byQuestion
	}
	byQuestion[in.QuestionID] = in.Answer

	isCorrect := in.Answer == question.CorrectAnswer

	s.logger.Debug().
		Str("quiz_id", in.QuizID).
		Str("question_id", in.QuestionID).
		Bool("correct", isCorrect).
		Msg("answer recorded")

	return AnswerFeedback{
		Feedback:      feedbackFor(isCorrect, question.CorrectAnswer),
		IsCorrect:     isCorrect,
		QuizID:        in.QuizID,
		QuestionID:    in.QuestionID,
		UserAnswer:    in.Answer,
		CorrectAnswer: question.CorrectAnswer,
	}, nil
}

// Score evaluates the recorded answers of a quiz in question order.
// Unanswered questions count as incorrect.
func (s *Store) Score(ctx context.Context, quizID string) (ScoreReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qz, err := s.lookup(quizID)
	if err != nil {
		return ScoreReport{}, err
	}

	recorded := s.answers[quizID]
	report := ScoreReport{
		QuizID:         quizID,
		TotalQuestions: len(qz.Questions),
		AnswerSummary:  make([]AnswerSummary, 0, len(qz.Questions)),
	}
	for _, question := range qz.Questions {
		entry := AnswerSummary{
			QuestionID:    question.ID,
			CorrectAnswer: question.CorrectAnswer,
		}
		if answer, ok := recorded[question.ID]; ok {
			entry.UserAnswer = &answer
			entry.IsCorrect = answer == question.CorrectAnswer
		}
		if entry.IsCorrect {
			report.Score++
		}
		report.AnswerSummary = append(report.AnswerSummary, entry)
	}
	return report, nil
}

// Len returns the number of stored quizzes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}

// lookup resolves the unredacted quiz. Callers must hold s.mu.
func (s *Store) lookup(quizID string) (*Quiz, error) {
	qz, ok := s.quizzes[quizID]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return qz, nil
}
