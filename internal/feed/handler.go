package feed

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-api/internal/metrics"
	httperrors "github.com/gokatarajesh/quiz-api/pkg/http/errors"
	ws "github.com/gokatarajesh/quiz-api/pkg/http/ws"
)

type quizChecker interface {
	Exists(quizID string) bool
}

// Handler upgrades watchers of a quiz to WebSocket connections.
type Handler struct {
	quizzes quizChecker
	hub     *ws.Hub
	logger  zerolog.Logger
}

// NewHandler creates the answer feed WebSocket handler.
func NewHandler(quizzes quizChecker, hub *ws.Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		quizzes: quizzes,
		hub:     hub,
		logger:  logger.With().Str("component", "feed_ws").Logger(),
	}
}

// HandleWebSocket handles GET /ws/quizzes/{quizId}
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizId")
	if !h.quizzes.Exists(quizID) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeQuizNotFound, "Quiz not found")
		return
	}

	conn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrader.Error has already written the upgrade_failed response.
		metrics.Errors.WithLabelValues(httperrors.ErrCodeUpgradeFailed).Inc()
		h.logger.Warn().Err(err).Str("quiz_id", quizID).Msg("WebSocket upgrade failed")
		return
	}

	connID := uuid.New()
	logger := h.logger.With().Str("quiz_id", quizID).Str("conn_id", connID.String()).Logger()
	wsConn := ws.NewConnection(conn, logger)
	h.hub.Watch(quizID, connID, wsConn)
	metrics.FeedSubscribers.Inc()

	go wsConn.WritePump()

	wsConn.ReadPump(func(msg ws.Message) error {
		var reply ws.Message
		var err error
		switch msg.Type {
		case ws.TypePing:
			reply, err = ws.NewMessage(ws.TypePong, struct{}{})
		default:
			reply, err = ws.NewMessage(ws.TypeError, ws.ErrorPayload{
				Code:    httperrors.ErrCodeInvalidRequest,
				Message: "unsupported message type: " + msg.Type,
			})
		}
		if err != nil {
			return err
		}
		reply.RequestID = msg.RequestID
		return wsConn.Send(reply)
	})

	h.hub.Unregister(connID)
	metrics.FeedSubscribers.Dec()
}
