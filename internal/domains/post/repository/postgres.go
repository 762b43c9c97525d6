package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post/model"
)

// Posts are JSONB documents; author_id is lifted into a column so
// CountByAuthor can use an index.
const postSchema = `
CREATE TABLE IF NOT EXISTS posts (
    id         TEXT PRIMARY KEY,
    author_id  TEXT NOT NULL,
    doc        JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS posts_author_id_idx ON posts (author_id);
`

const postColumns = `id, author_id, doc`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the table and index if missing.
func NewPostgresRepository(ctx context.Context, pool *pgxpool.Pool) (RepositoryInterface, error) {
	if _, err := pool.Exec(ctx, postSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure posts schema: %w", err)
	}
	return &postgresRepository{pool: pool}, nil
}

// postBody là phần document lưu trong cột doc
type postBody struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Comments []model.Comment `json:"comments"`
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		id, authorID string
		raw          []byte
	)
	if err := row.Scan(&id, &authorID, &raw); err != nil {
		return nil, err
	}

	var body postBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode post %s: %w", id, err)
	}
	if body.Comments == nil {
		body.Comments = []model.Comment{}
	}

	return &model.Post{
		ID:       id,
		Title:    body.Title,
		Content:  body.Content,
		AuthorID: authorID,
		Comments: body.Comments,
	}, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	body := postBody{
		Title:    post.Title,
		Content:  post.Content,
		Comments: make([]model.Comment, 0, len(post.Comments)),
	}
	for _, c := range post.Comments {
		body.Comments = append(body.Comments, model.Comment{ID: uuid.NewString(), Content: c.Content})
	}

	doc, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	query := `INSERT INTO posts (id, author_id, doc) VALUES ($1, $2, $3::jsonb) RETURNING ` + postColumns

	created, err := scanPost(r.pool.QueryRow(ctx, query, uuid.NewString(), post.AuthorID, string(doc)))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) (*model.Post, error) {
	if update.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	patch, err := json.Marshal(update.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to encode post update: %w", err)
	}

	query := `UPDATE posts SET doc = doc || $2::jsonb WHERE id = $1 RETURNING ` + postColumns

	p, err := scanPost(r.pool.QueryRow(ctx, query, id, string(patch)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
