package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/feynlearn/feynlearn/internal/llm"
)

// LLMRequestEventData aliases the llm package's event payload so EventRepo
// satisfies llm.EventSink directly.
type LLMRequestEventData = llm.RequestEvent

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates call counts and token totals per purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns the most recent events, newest first.
	QueryLLMEvents(ctx context.Context, limit int) ([]*LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil when absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// UsageByPurpose aggregates usage grouped by purpose label.
	UsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(time.Now()), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage, data.RequestBody, data.ResponseBody)
	return err
}

const selectEvents = `SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body FROM llm_events`

func (r *eventRepo) QueryLLMEvents(ctx context.Context, limit int) ([]*LLMEvent, error) {
	query := selectEvents + " ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	rows, err := r.db.QueryContext(ctx, selectEvents+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return events[0], nil
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		 FROM llm_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]*LLMEvent, error) {
	defer rows.Close()

	var events []*LLMEvent
	for rows.Next() {
		var (
			e         LLMEvent
			timestamp string
			success   int
		)
		if err := rows.Scan(&e.ID, &timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
			return nil, err
		}
		var err error
		if e.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, err
		}
		e.Success = success != 0
		events = append(events, &e)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
