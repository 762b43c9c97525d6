package service

import (
	"context"

	"blog-backend/internal/domains/author/model"
)

// ServiceInterface defines business logic operations for the Author domain
type ServiceInterface interface {
	// Create persists an already normalized and validated request.
	// Errors: model.ErrDuplicateUserName
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)

	// GetByID errors: model.ErrAuthorNotFound
	GetByID(ctx context.Context, id string) (*model.Author, error)

	List(ctx context.Context) ([]*model.Author, error)

	// Delete refuses while posts still reference the author.
	// Errors: model.ErrAuthorHasPosts
	Delete(ctx context.Context, id string) error
}

// PostCounter is the slice of the post repository the author service needs
// to enforce the restrict-on-delete rule.
type PostCounter interface {
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
