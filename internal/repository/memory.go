package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/deppfellow/posts-api/internal/model"
)

// MemoryPostRepository keeps posts in process memory, in insertion order.
// It backs the handler and service tests.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts []model.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

func (r *MemoryPostRepository) Create(_ context.Context, payload *model.CreatePostPayload) (*model.Post, error) {
	post := model.Post{
		ID:    uuid.NewString(),
		Title: payload.Title,
		Text:  payload.Text,
		Image: payload.Image,
	}

	r.mu.Lock()
	r.posts = append(r.posts, post)
	r.mu.Unlock()

	return &post, nil
}

func (r *MemoryPostRepository) List(_ context.Context, limit int) ([]model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := max(min(limit, len(r.posts)), 0)
	out := make([]model.Post, n)
	copy(out, r.posts[:n])
	return out, nil
}

func (r *MemoryPostRepository) ListAll(_ context.Context) ([]model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

func (r *MemoryPostRepository) FindByID(_ context.Context, id string) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, ErrPostNotFound
}

func (r *MemoryPostRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryPostRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	r.posts = nil
	r.mu.Unlock()
	return nil
}
