// Package repository handles all interactions with the database.
//
// Each repository owns the SQL for one entity and hides it from the
// service layer.
package repository

import (
	"github.com/deppfellow/posts-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Post *PostRepository
}

// NewRepositories builds every repository on the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Post: NewPostRepository(s.DB.Pool),
	}
}
