package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
)

// memoryRepository keeps posts in process; used by memory:// and tests.
type memoryRepository struct {
	mu    sync.RWMutex
	posts map[string]model.Post
	order []string
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		posts: make(map[string]model.Post),
	}
}

// clonePost copies the comment slice so callers never share backing arrays
// with the store.
func clonePost(p model.Post) *model.Post {
	comments := make([]model.Comment, len(p.Comments))
	copy(comments, p.Comments)
	p.Comments = comments
	return &p
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0, len(r.order))
	for _, id := range r.order {
		posts = append(posts, clonePost(r.posts[id]))
	}
	return posts, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *memoryRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created := *clonePost(*post)
	created.ID = uuid.NewString()
	for i := range created.Comments {
		created.Comments[i].ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[created.ID] = created
	r.order = append(r.order, created.ID)

	return clonePost(created), nil
}

func (r *memoryRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) (*model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}

	update.Apply(&p)
	r.posts[id] = p

	return clonePost(p), nil
}

func (r *memoryRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return nil
	}

	delete(r.posts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}
