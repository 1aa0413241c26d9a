// Package events records analysis outcomes for later reporting.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event types written by the API.
const (
	TypeAnalysisCompleted = "analysis_completed"
	TypeAnalysisRejected  = "analysis_rejected"
)

const insertTimeout = 5 * time.Second

// Event is one row in the analysis_events table.
type Event struct {
	RequestID string
	StudentID string
	EventType string
	Data      map[string]any
	CreatedAt time.Time
}

func (e Event) validate() error {
	if e.EventType == "" {
		return errors.New("event_type is required")
	}
	if e.RequestID == "" {
		return errors.New("request_id is required")
	}
	return nil
}

// Logger persists events.
type Logger interface {
	LogEvent(ctx context.Context, event Event) error
}

// NopLogger drops every event.
type NopLogger struct{}

func (NopLogger) LogEvent(context.Context, Event) error { return nil }

// MemoryLogger keeps events in memory.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) LogEvent(_ context.Context, event Event) error {
	if err := event.validate(); err != nil {
		return err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
	return nil
}

// Events returns a copy of everything logged so far.
func (l *MemoryLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// PostgresLogger inserts events into analysis_events.
type PostgresLogger struct {
	pool *pgxpool.Pool
}

func NewPostgresLogger(pool *pgxpool.Pool) *PostgresLogger {
	return &PostgresLogger{pool: pool}
}

func (l *PostgresLogger) LogEvent(ctx context.Context, event Event) error {
	if l == nil || l.pool == nil {
		return errors.New("event logger pool is nil")
	}
	if err := event.validate(); err != nil {
		return err
	}

	payload := event.Data
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	var studentID *string
	if event.StudentID != "" {
		studentID = &event.StudentID
	}

	_, err = l.pool.Exec(ctx,
		`INSERT INTO analysis_events (request_id, student_id, event_type, data, created_at)
		 VALUES ($1, $2, $3, $4::jsonb, $5)`,
		event.RequestID,
		studentID,
		event.EventType,
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	slog.Debug("event logged",
		"type", event.EventType,
		"request_id", event.RequestID,
	)
	return nil
}

// CountByType returns how many events of the given type have been stored.
func (l *PostgresLogger) CountByType(ctx context.Context, eventType string) (int, error) {
	if l == nil || l.pool == nil {
		return 0, errors.New("event logger pool is nil")
	}
	var n int
	err := l.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM analysis_events WHERE event_type = $1`, eventType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
