package repository

import (
	"context"

	"blog-backend/internal/domains/author/model"
)

// RepositoryInterface defines the data access operations for authors.
// Implementations: MongoDB (primary), PostgreSQL JSONB, in-memory.
type RepositoryInterface interface {
	// Create inserts a new author and returns it with its assigned ID.
	// Errors: model.ErrDuplicateUserName if userName is taken
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// FindByID returns model.ErrAuthorNotFound when absent,
	// including when id is not a valid identifier for the backend.
	FindByID(ctx context.Context, id string) (*model.Author, error)

	// FindByIDs resolves many references in one round trip.
	// Unknown or malformed ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*model.Author, error)

	FindByUserName(ctx context.Context, userName string) (*model.Author, error)

	// FindAll returns authors in insertion order.
	FindAll(ctx context.Context) ([]*model.Author, error)

	// Delete is a no-op when the author does not exist.
	Delete(ctx context.Context, id string) error
}
