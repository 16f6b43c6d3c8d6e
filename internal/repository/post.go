package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/posts-api/internal/model"
	"github.com/deppfellow/posts-api/internal/sqlerr"
)

// ErrPostNotFound is returned by lookups that match no post. It wraps
// pgx.ErrNoRows and names the table, so sqlerr.HandleError reports
// "Post not found".
var ErrPostNotFound = fmt.Errorf("%sposts: %w", sqlerr.TablePrefix, pgx.ErrNoRows)

const postColumns = `id, title, body, image`

// PostRepository stores posts in PostgreSQL.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts a post with a fresh id and returns it.
func (r *PostRepository) Create(ctx context.Context, payload *model.CreatePostPayload) (*model.Post, error) {
	post := &model.Post{
		ID:    uuid.NewString(),
		Title: payload.Title,
		Text:  payload.Text,
		Image: payload.Image,
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, title, body, image) VALUES ($1, $2, $3, $4)`,
		post.ID, post.Title, post.Text, post.Image,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert post")
	}

	return post, nil
}

// List returns at most limit posts in insertion order.
func (r *PostRepository) List(ctx context.Context, limit int) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY seq LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}

	return collectPosts(rows)
}

// ListAll returns every post in insertion order.
func (r *PostRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "list all posts")
	}

	return collectPosts(rows)
}

// FindByID returns ErrPostNotFound when no post has id.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrap(err, "find post")
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, errors.Wrap(err, "scan post")
	}

	return &post, nil
}

// DeleteByID removes the post with id. Deleting a missing post is not an error.
func (r *PostRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "delete post")
	}
	return nil
}

// DeleteAll removes every post.
func (r *PostRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM posts`); err != nil {
		return errors.Wrap(err, "delete all posts")
	}
	return nil
}

func collectPosts(rows pgx.Rows) ([]model.Post, error) {
	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Post])
	if err != nil {
		return nil, errors.Wrap(err, "scan posts")
	}

	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}
