package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handlePostAuditTask writes the audit record to the job logger.
func (j *JobService) handlePostAuditTask(_ context.Context, t *asynq.Task) error {
	var p PostAuditPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal post audit payload: %w: %w", err, asynq.SkipRetry)
	}

	if p.Action == "" {
		return fmt.Errorf("post audit task without action: %w", asynq.SkipRetry)
	}

	event := j.logger.Info().
		Str("type", TaskPostAudit).
		Str("action", string(p.Action)).
		Time("occurred_at", p.OccurredAt)
	if p.PostID != "" {
		event = event.Str("post_id", p.PostID)
	}
	if p.Title != "" {
		event = event.Str("title", p.Title)
	}
	event.Msg("post audit")

	return nil
}
