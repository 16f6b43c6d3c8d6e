package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskPostAudit is the asynq type of post audit tasks.
const TaskPostAudit = "post:audit"

// AuditAction names the change recorded by a post audit task.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditDeleted AuditAction = "deleted"
	AuditPurged  AuditAction = "purged"
)

// PostAuditPayload is the JSON body of a post audit task.
type PostAuditPayload struct {
	Action     AuditAction `json:"action"`
	PostID     string      `json:"post_id,omitempty"`
	Title      string      `json:"title,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewPostAuditTask builds a low priority audit task. Audit records are
// best effort, so retries are few.
func NewPostAuditTask(p PostAuditPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPostAudit,
		payload,
		asynq.MaxRetry(2),
		asynq.Queue("low"),
		asynq.Timeout(10*time.Second),
	), nil
}
