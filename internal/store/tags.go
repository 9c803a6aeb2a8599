package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag labels learning records for filtering and grouping.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagRepo provides CRUD over tags.
type TagRepo struct {
	db *sql.DB
}

// Create inserts a new tag with a trimmed name and returns its ID.
func (r *TagRepo) Create(ctx context.Context, name, color string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("tag name must not be empty")
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, color, created_at) VALUES (?, ?, ?, ?)",
		id, name, color, formatTime(time.Now()))
	if err != nil {
		return "", fmt.Errorf("insert tag: %w", err)
	}
	return id, nil
}

// GetByID returns the tag with the given ID, or nil when absent.
func (r *TagRepo) GetByID(ctx context.Context, id string) (*Tag, error) {
	return r.getOne(ctx, "SELECT id, name, color, created_at FROM tags WHERE id = ?", id)
}

// FindByName returns the tag with the given (trimmed) name, or nil.
func (r *TagRepo) FindByName(ctx context.Context, name string) (*Tag, error) {
	return r.getOne(ctx, "SELECT id, name, color, created_at FROM tags WHERE name = ?", strings.TrimSpace(name))
}

// List returns all tags ordered by name.
func (r *TagRepo) List(ctx context.Context) ([]*Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, color, created_at FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

// GetByIDs returns the tags matching the given IDs, ordered by name.
func (r *TagRepo) GetByIDs(ctx context.Context, ids []string) ([]*Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, color, created_at FROM tags WHERE id IN ("+placeholders+") ORDER BY name", args...)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

// Update renames or recolors a tag.
func (r *TagRepo) Update(ctx context.Context, id, name, color string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = ?, color = ? WHERE id = ?", strings.TrimSpace(name), color, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %s not found", id)
	}
	return nil
}

// Delete removes a tag; its record links cascade.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	return err
}

func (r *TagRepo) getOne(ctx context.Context, query string, arg any) (*Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	tags, err := scanTags(rows)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags[0], nil
}

func scanTags(rows *sql.Rows) ([]*Tag, error) {
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		var (
			tag       Tag
			createdAt string
		)
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &createdAt); err != nil {
			return nil, err
		}
		var err error
		if tag.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}
