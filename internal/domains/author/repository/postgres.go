package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author/model"
)

// Authors are stored as JSONB documents keyed by a UUID text id.
const authorSchema = `
CREATE TABLE IF NOT EXISTS authors (
    id         TEXT PRIMARY KEY,
    doc        JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS authors_user_name_key ON authors ((doc->>'userName'));
`

// pgUniqueViolation là PostgreSQL error code cho unique_violation
const pgUniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the table and index if missing.
func NewPostgresRepository(ctx context.Context, pool *pgxpool.Pool) (RepositoryInterface, error) {
	if _, err := pool.Exec(ctx, authorSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure authors schema: %w", err)
	}
	return &postgresRepository{pool: pool}, nil
}

// authorBody là phần document lưu trong cột doc (không chứa id)
type authorBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}

	var body authorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode author %s: %w", id, err)
	}

	return &model.Author{
		ID:        id,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		UserName:  body.UserName,
	}, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	doc, err := json.Marshal(authorBody{FirstName: a.FirstName, LastName: a.LastName, UserName: a.UserName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode author: %w", err)
	}

	query := `INSERT INTO authors (id, doc) VALUES ($1, $2::jsonb) RETURNING id, doc`

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, uuid.NewString(), string(doc)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, model.ErrDuplicateUserName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	return r.findOne(ctx, `SELECT id, doc FROM authors WHERE id = $1`, id)
}

func (r *postgresRepository) FindByUserName(ctx context.Context, userName string) (*model.Author, error) {
	return r.findOne(ctx, `SELECT id, doc FROM authors WHERE doc->>'userName' = $1`, userName)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg string) (*model.Author, error) {
	a, err := scanAuthor(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Author, error) {
	if len(ids) == 0 {
		return []*model.Author{}, nil
	}
	return r.find(ctx, `SELECT id, doc FROM authors WHERE id = ANY($1) ORDER BY created_at, id`, ids)
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.Author, error) {
	return r.find(ctx, `SELECT id, doc FROM authors ORDER BY created_at, id`)
}

func (r *postgresRepository) find(ctx context.Context, query string, args ...interface{}) ([]*model.Author, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []*model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}
