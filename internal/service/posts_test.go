package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/posts-api/internal/lib/job"
	"github.com/deppfellow/posts-api/internal/model"
	"github.com/deppfellow/posts-api/internal/repository"
)

type auditRecord struct {
	action job.AuditAction
	postID string
	title  string
}

type fakeAudit struct {
	records []auditRecord
	err     error
}

func (f *fakeAudit) PublishPostAudit(_ context.Context, action job.AuditAction, postID, title string) error {
	f.records = append(f.records, auditRecord{action, postID, title})
	return f.err
}

// countingStore counts calls and can be made to fail.
type countingStore struct {
	*repository.MemoryPostRepository
	calls map[string]int
	err   error
}

func newCountingStore() *countingStore {
	return &countingStore{
		MemoryPostRepository: repository.NewMemoryPostRepository(),
		calls:                map[string]int{},
	}
}

func (s *countingStore) Create(ctx context.Context, p *model.CreatePostPayload) (*model.Post, error) {
	s.calls["Create"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.MemoryPostRepository.Create(ctx, p)
}

func (s *countingStore) List(ctx context.Context, limit int) ([]model.Post, error) {
	s.calls["List"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.MemoryPostRepository.List(ctx, limit)
}

func (s *countingStore) DeleteAll(ctx context.Context) error {
	s.calls["DeleteAll"]++
	if s.err != nil {
		return s.err
	}
	return s.MemoryPostRepository.DeleteAll(ctx)
}

func newTestService(store PostStore, audit AuditPublisher) *PostService {
	logger := zerolog.Nop()
	return NewPostService(store, audit, &logger)
}

func payload(title string) *model.CreatePostPayload {
	return &model.CreatePostPayload{Title: title, Text: "body", Image: "http://example.com/" + title + ".png"}
}

func TestPostServiceAddAndFetch(t *testing.T) {
	ctx := context.Background()
	audit := &fakeAudit{}
	svc := newTestService(repository.NewMemoryPostRepository(), audit)

	created, err := svc.AddPost(ctx, payload("first"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "first", created.Title)

	got, err := svc.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	require.Len(t, audit.records, 1)
	assert.Equal(t, auditRecord{job.AuditCreated, created.ID, "first"}, audit.records[0])
}

func TestPostServiceGetNumPosts(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	svc := newTestService(store, nil)

	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.AddPost(ctx, payload(title))
		require.NoError(t, err)
	}

	posts, err := svc.GetNumPosts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].Title)
	assert.Equal(t, "b", posts[1].Title)
	assert.Equal(t, 1, store.calls["List"])

	posts, err = svc.GetNumPosts(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestPostServiceGetMissingPost(t *testing.T) {
	svc := newTestService(repository.NewMemoryPostRepository(), nil)

	_, err := svc.GetPostByID(context.Background(), "6f1c1c3e-8a43-4a38-9b5e-0a4c2b3f1d2e")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestPostServiceDeletes(t *testing.T) {
	ctx := context.Background()
	audit := &fakeAudit{}
	svc := newTestService(repository.NewMemoryPostRepository(), audit)

	a, err := svc.AddPost(ctx, payload("a"))
	require.NoError(t, err)
	_, err = svc.AddPost(ctx, payload("b"))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePostByID(ctx, a.ID))
	all, err := svc.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Title)

	require.NoError(t, svc.DeleteAllPosts(ctx))
	all, err = svc.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.Len(t, audit.records, 4)
	assert.Equal(t, auditRecord{job.AuditDeleted, a.ID, ""}, audit.records[2])
	assert.Equal(t, job.AuditPurged, audit.records[3].action)
}

func TestPostServiceStoreErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	fault := errors.New("store unavailable")
	store := newCountingStore()
	store.err = fault
	audit := &fakeAudit{}
	svc := newTestService(store, audit)

	_, err := svc.AddPost(ctx, payload("a"))
	assert.Same(t, fault, err)

	_, err = svc.GetNumPosts(ctx, 3)
	assert.Same(t, fault, err)

	assert.Same(t, fault, svc.DeleteAllPosts(ctx))

	assert.Equal(t, map[string]int{"Create": 1, "List": 1, "DeleteAll": 1}, store.calls)
	assert.Empty(t, audit.records)
}

func TestPostServiceAuditFailureIsNotFatal(t *testing.T) {
	svc := newTestService(repository.NewMemoryPostRepository(), &fakeAudit{err: errors.New("redis down")})

	post, err := svc.AddPost(context.Background(), payload("a"))
	require.NoError(t, err)
	assert.NotNil(t, post)
}

// stalledAudit blocks until its context ends, like an enqueue to an
// unreachable Redis.
type stalledAudit struct{}

func (stalledAudit) PublishPostAudit(ctx context.Context, _ job.AuditAction, _, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestPostServiceAuditIsBounded(t *testing.T) {
	svc := newTestService(repository.NewMemoryPostRepository(), stalledAudit{})
	svc.auditTimeout = 20 * time.Millisecond

	start := time.Now()
	post, err := svc.AddPost(context.Background(), payload("a"))
	require.NoError(t, err)
	assert.NotNil(t, post)
	assert.Less(t, time.Since(start), time.Second)

	require.NoError(t, svc.DeleteAllPosts(context.Background()))
	assert.Less(t, time.Since(start), 2*time.Second)
}

// liveCtxAudit records whether its context was still usable.
type liveCtxAudit struct {
	errs []error
}

func (a *liveCtxAudit) PublishPostAudit(ctx context.Context, _ job.AuditAction, _, _ string) error {
	a.errs = append(a.errs, ctx.Err())
	return nil
}

func TestPostServiceAuditSurvivesCallerCancellation(t *testing.T) {
	audit := &liveCtxAudit{}
	svc := newTestService(repository.NewMemoryPostRepository(), audit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.DeleteAllPosts(ctx))
	assert.Equal(t, []error{nil}, audit.errs)
}
