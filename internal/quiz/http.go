package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-api/internal/logging"
	"github.com/gokatarajesh/quiz-api/internal/metrics"
	httperrors "github.com/gokatarajesh/quiz-api/pkg/http/errors"
)

// AnswerPublisher fans recorded answers out to live watchers.
type AnswerPublisher interface {
	PublishAnswer(ctx context.Context, fb AnswerFeedback) error
}

// HTTPHandlers provides REST endpoints for quiz operations.
type HTTPHandlers struct {
	store     *Store
	publisher AnswerPublisher
	logger    zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz endpoints.
// publisher may be nil, in which case answers are not broadcast.
func NewHTTPHandlers(store *Store, publisher AnswerPublisher, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		store:     store,
		publisher: publisher,
		logger:    logger.With().Str("component", "quiz_http").Logger(),
	}
}

// Register mounts the quiz routes on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /quiz", h.CreateQuiz)
	mux.HandleFunc("GET /quiz/test", h.Test)
	mux.HandleFunc("POST /quiz/answer", h.SubmitAnswer)
	mux.HandleFunc("GET /quiz/{quizId}", h.GetQuiz)
	mux.HandleFunc("GET /quiz/{quizId}/evaluate", h.Evaluate)
}

// CreateQuiz handles POST /quiz
func (h *HTTPHandlers) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req NewQuiz
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		countError(httperrors.ErrCodeInvalidRequest)
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	qz, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	metrics.QuizzesCreated.Inc()

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"statusCode": http.StatusCreated,
		"message":    "Quiz Created Successfully",
		"data":       qz,
	})
}

// Test handles GET /quiz/test
func (h *HTTPHandlers) Test(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quiz Controller is working!",
	})
}

// GetQuiz handles GET /quiz/{quizId}
func (h *HTTPHandlers) GetQuiz(w http.ResponseWriter, r *http.Request) {
	qz, err := h.store.Get(r.Context(), r.PathValue("quizId"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Quiz data fetched Successfully",
		"response": qz,
	})
}

// SubmitAnswer handles POST /quiz/answer
func (h *HTTPHandlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		countError(httperrors.ErrCodeInvalidRequest)
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if field := missingAnswerField(req); field != "" {
		countError(httperrors.ErrCodeMissingField)
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, field+" must not be empty", field)
		return
	}

	fb, err := h.store.RecordAnswer(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	metrics.ObserveAnswer(fb.IsCorrect)

	if h.publisher != nil {
		if err := h.publisher.PublishAnswer(r.Context(), fb); err != nil {
			h.loggerFor(r).Warn().Err(err).Str("quiz_id", fb.QuizID).Msg("answer feed publish failed")
		}
	}

	h.respondJSON(w, http.StatusOK, fb)
}

// Evaluate handles GET /quiz/{quizId}/evaluate
func (h *HTTPHandlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.Score(r.Context(), r.PathValue("quizId"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	metrics.ScoresComputed.Inc()

	h.respondJSON(w, http.StatusOK, report)
}

func missingAnswerField(req SubmitAnswer) string {
	switch {
	case req.QuizID == "":
		return "quizId"
	case req.QuestionID == "":
		return "questionId"
	case req.Answer == "":
		return "answer"
	}
	return ""
}

// handleError maps store errors onto exactly one HTTP status each.
func (h *HTTPHandlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		countError(httperrors.ErrCodeValidationFailed)
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Message, verr.Field)
	case errors.Is(err, ErrInvalidQuiz):
		h.respondError(w, http.StatusBadRequest, httperrors.ErrCodeValidationFailed, err.Error())
	case errors.Is(err, ErrQuizNotFound):
		h.respondError(w, http.StatusNotFound, httperrors.ErrCodeQuizNotFound, "Quiz not found")
	case errors.Is(err, ErrQuestionNotFound):
		h.respondError(w, http.StatusNotFound, httperrors.ErrCodeQuestionNotFound, "Question not found")
	default:
		h.loggerFor(r).Error().Err(err).Str("path", r.URL.Path).Msg("unhandled quiz error")
		countError(httperrors.ErrCodeInternalError)
		httperrors.RespondInternalError(w, "Internal server error")
	}
}

func (h *HTTPHandlers) loggerFor(r *http.Request) *zerolog.Logger {
	logger := logging.FromContextOr(r.Context(), h.logger)
	return &logger
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, status int, code, message string) {
	countError(code)
	httperrors.RespondError(w, status, code, message)
}

func countError(code string) {
	metrics.Errors.WithLabelValues(code).Inc()
}
