package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-api/internal/config"
	"github.com/gokatarajesh/quiz-api/internal/quiz"
)

func testConfig() *config.App {
	return &config.App{
		HTTPAddr: "127.0.0.1:0",
		CORS: config.CORS{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           600,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.App) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()
	store := quiz.NewStore(logger, quiz.StoreOptions{})
	handlers := quiz.NewHTTPHandlers(store, nil, logger)

	srv := httptest.NewServer(NewHandler(cfg, logger, handlers, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := get(t, srv.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	get(t, srv.URL+"/quiz/missing")

	resp := get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `quiz_errors_total{code="quiz_not_found"}`)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/quiz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"http://allowed.test"}
	srv := newTestServer(t, cfg)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/quiz/test", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.test")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestQuizFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := postJSON(t, srv.URL+"/quiz", map[string]interface{}{
		"title": "Sample Quiz",
		"questions": []map[string]interface{}{
			{"question": "What is 2+2?", "options": []string{"3", "4", "5"}, "correctAnswer": "4"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data quiz.Quiz `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	quizID := created.Data.ID
	questionID := created.Data.Questions[0].ID

	resp = get(t, srv.URL+"/quiz/"+quizID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "correctAnswer")

	resp = postJSON(t, srv.URL+"/quiz/answer", map[string]string{"quizId": quizID, "questionId": questionID, "answer": "4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fb quiz.AnswerFeedback
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fb))
	assert.True(t, fb.IsCorrect)

	var report quiz.ScoreReport
	resp = get(t, srv.URL+"/quiz/"+quizID+"/evaluate")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 1, report.Score)
	assert.Equal(t, 1, report.TotalQuestions)

	resp = postJSON(t, srv.URL+"/quiz/answer", map[string]string{"quizId": quizID, "questionId": questionID, "answer": "3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fb))
	assert.False(t, fb.IsCorrect)
	assert.Equal(t, "Incorrect. The correct answer is: 4", fb.Feedback)

	resp = get(t, srv.URL+"/quiz/"+quizID+"/evaluate")
	report = quiz.ScoreReport{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, 1, report.TotalQuestions)
}

func TestOpenAPIDocument(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, path := range []string{"/api", "/api-json"} {
		resp := get(t, srv.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var doc struct {
			Info struct {
				Title string `json:"title"`
			} `json:"info"`
			Paths map[string]json.RawMessage `json:"paths"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, "Quiz API", doc.Info.Title)
		for _, route := range []string{"/quiz", "/quiz/test", "/quiz/answer", "/quiz/{quizId}", "/quiz/{quizId}/evaluate"} {
			assert.Contains(t, doc.Paths, route)
		}
	}
}

func TestUnknownRouteIsJSONNotFound(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp := get(t, srv.URL+"/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not_found", body.Error)
	assert.Equal(t, "Cannot GET /nope", body.Message)
}
