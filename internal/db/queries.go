package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// New creates a Queries instance.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// SetSessionValue upserts one key of the persisted session record.
func (q *Queries) SetSessionValue(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO session (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// GetSessionValue reads one key of the persisted session record.
// Returns sql.ErrNoRows when the key has never been set.
func (q *Queries) GetSessionValue(ctx context.Context, key string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, "SELECT value FROM session WHERE key = ?", key).Scan(&value)
	return value, err
}

// ClearSession removes the persisted session record.
func (q *Queries) ClearSession(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM session")
	return err
}

// ContentPlan is a stored content plan.
type ContentPlan struct {
	ID        int64
	Niche     string
	Days      int
	IdeasJSON string
	CreatedAt time.Time
}

// CreateContentPlanParams holds the fields for CreateContentPlan.
type CreateContentPlanParams struct {
	Niche     string
	Days      int
	IdeasJSON string
}

// CreateContentPlan stores a generated content plan and returns its id.
func (q *Queries) CreateContentPlan(ctx context.Context, arg CreateContentPlanParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO content_plans (niche, days, ideas_json)
		VALUES (?, ?, ?)
	`, arg.Niche, arg.Days, arg.IdeasJSON)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetContentPlan fetches a stored plan by id.
func (q *Queries) GetContentPlan(ctx context.Context, id int64) (ContentPlan, error) {
	var plan ContentPlan
	err := q.db.QueryRowContext(ctx, `
		SELECT id, niche, days, ideas_json, created_at
		FROM content_plans WHERE id = ?
	`, id).Scan(&plan.ID, &plan.Niche, &plan.Days, &plan.IdeasJSON, &plan.CreatedAt)
	return plan, err
}

// GetLatestContentPlan fetches the most recently generated plan.
func (q *Queries) GetLatestContentPlan(ctx context.Context) (ContentPlan, error) {
	var plan ContentPlan
	err := q.db.QueryRowContext(ctx, `
		SELECT id, niche, days, ideas_json, created_at
		FROM content_plans ORDER BY id DESC LIMIT 1
	`).Scan(&plan.ID, &plan.Niche, &plan.Days, &plan.IdeasJSON, &plan.CreatedAt)
	return plan, err
}

// PublishedPost is a record of a post created through this tool.
type PublishedPost struct {
	ID          int64
	PostUUID    string
	MediaUUID   sql.NullString
	Caption     string
	Audience    string
	ScheduledAt sql.NullString
	CreatedAt   time.Time
}

// CreatePublishedPostParams holds the fields for CreatePublishedPost.
type CreatePublishedPostParams struct {
	PostUUID    string
	MediaUUID   sql.NullString
	Caption     string
	Audience    string
	ScheduledAt sql.NullString
}

// CreatePublishedPost records a successfully published post.
func (q *Queries) CreatePublishedPost(ctx context.Context, arg CreatePublishedPostParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO published_posts (post_uuid, media_uuid, caption, audience, scheduled_at)
		VALUES (?, ?, ?, ?, ?)
	`, arg.PostUUID, arg.MediaUUID, arg.Caption, arg.Audience, arg.ScheduledAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPublishedPosts returns the most recent post records.
func (q *Queries) ListPublishedPosts(ctx context.Context, limit int) ([]PublishedPost, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, post_uuid, media_uuid, caption, audience, scheduled_at, created_at
		FROM published_posts ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PublishedPost
	for rows.Next() {
		var p PublishedPost
		if err := rows.Scan(&p.ID, &p.PostUUID, &p.MediaUUID, &p.Caption, &p.Audience, &p.ScheduledAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
