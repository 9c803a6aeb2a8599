package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feynlearn/feynlearn/internal/feynman"
)

// Record is one persisted practice round: the knowledge concept, the
// generated questions, the learner's explanation, and the assessment.
type Record struct {
	ID         string                    `json:"id"`
	Knowledge  string                    `json:"knowledge"`
	Questions  []string                  `json:"questions"`
	Answer     string                    `json:"answer"`
	Assessment *feynman.AssessmentResult `json:"assessment"`
	Tags       []string                  `json:"tags"` // tag IDs
	CreatedAt  time.Time                 `json:"createdAt"`
	UpdatedAt  time.Time                 `json:"updatedAt"`
}

// RecordRepo provides CRUD and search over learning records.
type RecordRepo struct {
	db *sql.DB
}

// Create inserts a new record. A missing ID is assigned; zero timestamps
// are stamped with the current time, so imported records keep theirs.
func (r *RecordRepo) Create(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	questions, assessment, err := marshalRecordFields(rec)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (id, knowledge, questions, answer, assessment, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Knowledge, questions, rec.Answer, assessment,
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	if err := replaceTagLinks(ctx, tx, rec.ID, rec.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID returns the record with the given ID, or nil when absent.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	rows, err := r.db.QueryContext(ctx, selectRecords+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	recs, err := scanRecords(ctx, r.db, rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// List returns all records, newest first.
func (r *RecordRepo) List(ctx context.Context) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, selectRecords+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	return scanRecords(ctx, r.db, rows)
}

// Update rewrites a record's mutable fields and its tag links, and bumps
// updated_at.
func (r *RecordRepo) Update(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()

	questions, assessment, err := marshalRecordFields(rec)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE records SET knowledge = ?, questions = ?, answer = ?, assessment = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Knowledge, questions, rec.Answer, assessment, formatTime(rec.UpdatedAt), rec.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("record %s not found", rec.ID)
	}

	if err := replaceTagLinks(ctx, tx, rec.ID, rec.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a record; its tag links cascade.
func (r *RecordRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	return err
}

// Search returns records whose knowledge or answer contains the keyword,
// case-insensitively, newest first.
func (r *RecordRepo) Search(ctx context.Context, keyword string) ([]*Record, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	rows, err := r.db.QueryContext(ctx,
		selectRecords+` WHERE lower(knowledge) LIKE ? OR lower(answer) LIKE ?
		 ORDER BY created_at DESC`,
		pattern, pattern)
	if err != nil {
		return nil, err
	}
	return scanRecords(ctx, r.db, rows)
}

// Clear deletes all records.
func (r *RecordRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM records")
	return err
}

const selectRecords = `SELECT id, knowledge, questions, answer, assessment, created_at, updated_at FROM records`

func marshalRecordFields(rec *Record) (questions string, assessment sql.NullString, err error) {
	qs := rec.Questions
	if qs == nil {
		qs = []string{}
	}
	qb, err := json.Marshal(qs)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("marshal questions: %w", err)
	}
	if rec.Assessment != nil {
		ab, err := json.Marshal(rec.Assessment)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("marshal assessment: %w", err)
		}
		assessment = sql.NullString{String: string(ab), Valid: true}
	}
	return string(qb), assessment, nil
}

func scanRecords(ctx context.Context, db *sql.DB, rows *sql.Rows) ([]*Record, error) {
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		var (
			rec        Record
			questions  string
			assessment sql.NullString
			createdAt  string
			updatedAt  string
		)
		if err := rows.Scan(&rec.ID, &rec.Knowledge, &questions, &rec.Answer, &assessment, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(questions), &rec.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions for %s: %w", rec.ID, err)
		}
		if assessment.Valid {
			rec.Assessment = &feynman.AssessmentResult{}
			if err := json.Unmarshal([]byte(assessment.String), rec.Assessment); err != nil {
				return nil, fmt.Errorf("unmarshal assessment for %s: %w", rec.ID, err)
			}
		}
		var err error
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		tags, err := recordTagIDs(ctx, db, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Tags = tags
	}
	return recs, nil
}

func recordTagIDs(ctx context.Context, db *sql.DB, recordID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT t.id FROM tags t
		 JOIN record_tags rt ON rt.tag_id = t.id
		 WHERE rt.record_id = ?
		 ORDER BY t.name`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tags = append(tags, id)
	}
	return tags, rows.Err()
}

func replaceTagLinks(ctx context.Context, tx *sql.Tx, recordID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM record_tags WHERE record_id = ?", recordID); err != nil {
		return fmt.Errorf("clear tag links: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO record_tags (record_id, tag_id) VALUES (?, ?)", recordID, tagID); err != nil {
			return fmt.Errorf("link tag %s: %w", tagID, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
