// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated payloads, services call the repositories.
package service

import (
	"github.com/deppfellow/posts-api/internal/lib/job"
	"github.com/deppfellow/posts-api/internal/repository"
	"github.com/deppfellow/posts-api/internal/server"
)

type Services struct {
	Post *PostService
	Job  *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var audit AuditPublisher
	if s.Job != nil {
		audit = s.Job
	}

	return &Services{
		Post: NewPostService(repos.Post, audit, s.Logger),
		Job:  s.Job,
	}
}
