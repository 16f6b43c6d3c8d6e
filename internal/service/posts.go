package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/posts-api/internal/lib/job"
	"github.com/deppfellow/posts-api/internal/model"
)

// DefaultAuditTimeout bounds how long a write waits for its audit record
// to be enqueued.
const DefaultAuditTimeout = 250 * time.Millisecond

// PostStore is the persistence collaborator behind PostService.
type PostStore interface {
	Create(ctx context.Context, payload *model.CreatePostPayload) (*model.Post, error)
	List(ctx context.Context, limit int) ([]model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// AuditPublisher receives a record of every post change.
type AuditPublisher interface {
	PublishPostAudit(ctx context.Context, action job.AuditAction, postID, title string) error
}

// PostService calls the store once per operation and holds no post state.
// Store errors are returned unchanged.
type PostService struct {
	store        PostStore
	audit        AuditPublisher
	auditTimeout time.Duration
	logger       *zerolog.Logger
}

// NewPostService builds the service. audit may be nil.
func NewPostService(store PostStore, audit AuditPublisher, logger *zerolog.Logger) *PostService {
	return &PostService{
		store:        store,
		audit:        audit,
		auditTimeout: DefaultAuditTimeout,
		logger:       logger,
	}
}

func (s *PostService) AddPost(ctx context.Context, payload *model.CreatePostPayload) (*model.Post, error) {
	post, err := s.store.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, job.AuditCreated, post.ID, post.Title)
	return post, nil
}

// GetNumPosts returns at most num posts in insertion order.
func (s *PostService) GetNumPosts(ctx context.Context, num int) ([]model.Post, error) {
	return s.store.List(ctx, num)
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	return s.store.FindByID(ctx, id)
}

func (s *PostService) GetAllPosts(ctx context.Context) ([]model.Post, error) {
	return s.store.ListAll(ctx)
}

func (s *PostService) DeletePostByID(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, job.AuditDeleted, id, "")
	return nil
}

func (s *PostService) DeleteAllPosts(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}

	s.publish(ctx, job.AuditPurged, "", "")
	return nil
}

// publish never fails the request; a lost audit record is only logged.
// The write already happened, so the caller's cancellation is ignored and
// only auditTimeout applies.
func (s *PostService) publish(ctx context.Context, action job.AuditAction, postID, title string) {
	if s.audit == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)
	defer cancel()

	if err := s.audit.PublishPostAudit(ctx, action, postID, title); err != nil {
		s.logger.Warn().
			Err(err).
			Str("action", string(action)).
			Str("post_id", postID).
			Msg("failed to publish post audit")
	}
}
