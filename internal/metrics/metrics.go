package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Answer results used as the "result" label.
const (
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
)

var (
	QuizzesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_created_total",
		Help: "Number of quizzes created.",
	})

	AnswersRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_answers_total",
		Help: "Number of answers recorded, by correctness.",
	}, []string{"result"})

	ScoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_scores_total",
		Help: "Number of score reports served.",
	})

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_errors_total",
		Help: "Number of error responses, by error code.",
	}, []string{"code"})

	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quiz_feed_subscribers",
		Help: "Open websocket connections watching quiz answer feeds.",
	})
)

// ObserveAnswer increments the answer counter for the given outcome.
func ObserveAnswer(correct bool) {
	if correct {
		AnswersRecorded.WithLabelValues(ResultCorrect).Inc()
		return
	}
	AnswersRecorded.WithLabelValues(ResultIncorrect).Inc()
}
