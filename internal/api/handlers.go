package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/events"
	"github.com/p-n-ai/pai-quiz/internal/export"
	"github.com/p-n-ai/pai-quiz/internal/intake"
	"github.com/p-n-ai/pai-quiz/internal/platform/cache"
)

const (
	opAnalyze         = "analyze"
	opRecommendations = "recommendations"
	opStudyPlan       = "study-plan"
	opExport          = "export"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	attempts, err := readAttempts(w, r)
	if err != nil {
		s.fail(w, r, opAnalyze, err)
		return
	}

	key := cacheKey(opAnalyze, 0, attempts)
	var res analysis.AnalysisResult
	if !s.lookup(r.Context(), key, &res) {
		out, err := s.engine.Analyze(attempts)
		if err != nil {
			s.fail(w, r, opAnalyze, err)
			return
		}
		res = *out
		s.store(r.Context(), key, res)
	}

	s.observe(opAnalyze, "ok")
	s.logCompleted(r, opAnalyze, &res)
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": res})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	attempts, err := readAttempts(w, r)
	if err != nil {
		s.fail(w, r, opRecommendations, err)
		return
	}

	key := cacheKey(opRecommendations, 0, attempts)
	var recs []string
	if !s.lookup(r.Context(), key, &recs) {
		recs, err = s.engine.Recommendations(attempts)
		if err != nil {
			s.fail(w, r, opRecommendations, err)
			return
		}
		s.store(r.Context(), key, recs)
	}

	s.observe(opRecommendations, "ok")
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "recommendations": recs})
}

func (s *Server) handleStudyPlan(w http.ResponseWriter, r *http.Request) {
	budget := s.engine.Config().DailyBudgetMinutes
	if raw := r.URL.Query().Get("budget"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(w, r, opStudyPlan, &analysis.ValidationError{
				Message: "invalid budget",
				Details: []string{"budget must be a whole number of minutes"},
			})
			return
		}
		budget = n
	}

	attempts, err := readAttempts(w, r)
	if err != nil {
		s.fail(w, r, opStudyPlan, err)
		return
	}

	key := cacheKey(opStudyPlan, budget, attempts)
	var plan []analysis.StudyPlanEntry
	if !s.lookup(r.Context(), key, &plan) {
		plan, err = s.engine.StudyPlanWithBudget(attempts, budget)
		if err != nil {
			s.fail(w, r, opStudyPlan, err)
			return
		}
		s.store(r.Context(), key, plan)
	}

	s.observe(opStudyPlan, "ok")
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "studyPlan": plan})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	attempts, err := readAttempts(w, r)
	if err != nil {
		s.fail(w, r, opExport, err)
		return
	}
	res, err := s.engine.Analyze(attempts)
	if err != nil {
		s.fail(w, r, opExport, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, res); err != nil {
		s.fail(w, r, opExport, err)
		return
	}

	s.observe(opExport, "ok")
	s.logCompleted(r, opExport, res)
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="quiz-analysis.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Health())
}

func readAttempts(w http.ResponseWriter, r *http.Request) ([]analysis.AttemptRecord, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &analysis.ValidationError{Message: "request body too large"}
		}
		return nil, &analysis.ValidationError{Message: "could not read request body"}
	}
	return intake.ParseAttempts(body)
}

// cacheKey digests the operation, the budget and the decoded attempts so
// formatting differences in the request body share one entry.
func cacheKey(op string, budget int, attempts []analysis.AttemptRecord) string {
	canonical, _ := json.Marshal(attempts)
	return cache.Key(op, []byte(strconv.Itoa(budget)), canonical)
}

func (s *Server) lookup(ctx context.Context, key string, v any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, v)
	switch {
	case err != nil:
		slog.Warn("cache lookup failed", "error", err)
		s.observeCache("error")
		return false
	case hit:
		s.observeCache("hit")
	default:
		s.observeCache("miss")
	}
	return hit
}

func (s *Server) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v); err != nil {
		slog.Warn("cache store failed", "error", err)
	}
}

func (s *Server) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.ObserveCache(result)
	}
}

func (s *Server) logCompleted(r *http.Request, op string, res *analysis.AnalysisResult) {
	weak := []string{}
	for _, g := range res.Gaps {
		if g.Band.NeedsWork() {
			weak = append(weak, string(g.Subject))
		}
	}
	s.logEvent(r, events.Event{
		EventType: events.TypeAnalysisCompleted,
		Data: map[string]any{
			"operation":       op,
			"attempted":       res.Overall.Attempted,
			"overallAccuracy": res.Overall.AccuracyPercent(),
			"performance":     res.Performance.Level,
			"needsWork":       weak,
		},
	})
}

func (s *Server) logEvent(r *http.Request, ev events.Event) {
	ev.RequestID = RequestID(r.Context())
	ev.StudentID = r.Header.Get(StudentIDHeader)
	if err := s.events.LogEvent(r.Context(), ev); err != nil {
		slog.Warn("event log failed", "type", ev.EventType, "error", err)
	}
}

// fail writes the error envelope. Validation problems are the caller's
// fault and get a 400; anything else is a 500 with the cause kept in logs.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if ve, ok := analysis.AsValidation(err); ok {
		s.observe(op, "invalid")
		s.logEvent(r, events.Event{
			EventType: events.TypeAnalysisRejected,
			Data:      map[string]any{"operation": op, "error": ve.Message},
		})
		body := map[string]any{"status": "failed", "error": ve.Message}
		if len(ve.Details) > 0 {
			body["details"] = ve.Details
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}

	s.observe(op, "error")
	slog.Error("request failed",
		"operation", op,
		"request_id", RequestID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "failed", "error": "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
