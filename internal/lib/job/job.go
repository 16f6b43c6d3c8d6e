// Package job runs background work on asynq, a Redis-backed queue.
//
// The API process is both the producer (asynq.Client) and the consumer
// (asynq.Server) of its tasks.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/posts-api/internal/config"
)

// JobService enqueues tasks and runs their workers.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPostAudit, j.handlePostAuditTask)
	return mux
}

// Start launches the workers in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// PublishPostAudit enqueues an audit record for a post change.
func (j *JobService) PublishPostAudit(ctx context.Context, action AuditAction, postID, title string) error {
	task, err := NewPostAuditTask(PostAuditPayload{
		Action:     action,
		PostID:     postID,
		Title:      title,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("building post audit task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing post audit task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("action", string(action)).
		Msg("post audit task enqueued")
	return nil
}

// asynqLogger routes asynq's own logs through zerolog.
type asynqLogger struct {
	log zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) *asynqLogger {
	return &asynqLogger{log: logger.With().Str("component", "asynq").Logger()}
}

func (l *asynqLogger) Debug(args ...any) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any) { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any) { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
