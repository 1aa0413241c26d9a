package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/intake"
)

const opLive = "live"

// LiveReply is sent after every frame on /ws/quiz.
type LiveReply struct {
	Status   string                   `json:"status"`
	Attempts int                      `json:"attempts"`
	Data     *analysis.AnalysisResult `json:"data,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Details  []string                 `json:"details,omitempty"`
}

// handleLiveQuiz re-analyses the connection's attempts after each answer.
// The attempt sequence lives only as long as the connection.
func (s *Server) handleLiveQuiz(w http.ResponseWriter, r *http.Request) {
	// Quiz sessions outlive the server's read and write timeouts.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.wsOriginPatterns(),
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxBodyBytes)

	ctx := r.Context()
	var attempts []analysis.AttemptRecord
	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			logClose(err)
			return
		}

		reply := s.liveStep(&attempts, frame)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			slog.Debug("websocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) liveStep(attempts *[]analysis.AttemptRecord, frame []byte) LiveReply {
	rec, err := intake.ParseAttempt(frame)
	if err == nil {
		_, err = analysis.ParseSubject(string(rec.Subject))
	}
	if err != nil {
		return s.liveFailure(len(*attempts), err)
	}

	next := append(*attempts, rec)
	res, err := s.engine.Analyze(next)
	if err != nil {
		return s.liveFailure(len(*attempts), err)
	}
	*attempts = next
	s.observe(opLive, "ok")
	return LiveReply{Status: "success", Attempts: len(next), Data: res}
}

func (s *Server) liveFailure(n int, err error) LiveReply {
	reply := LiveReply{Status: "failed", Attempts: n, Error: "internal server error"}
	if ve, ok := analysis.AsValidation(err); ok {
		s.observe(opLive, "invalid")
		reply.Error = ve.Message
		reply.Details = ve.Details
		return reply
	}
	s.observe(opLive, "error")
	slog.Error("live analysis failed", "error", err)
	return reply
}

func logClose(err error) {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	slog.Debug("websocket read ended", "error", err)
}
