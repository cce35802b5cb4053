package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid publish payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := j.ps.PublishScheduled(ctx, payload.PostID, payload.ScheduledAt); err != nil {
		slog.Error("scheduled publish failed", "post_id", payload.PostID, "error", err)
		return err
	}
	return nil
}

// NewServeMux routes queue tasks to their handlers.
func (j *Queue) NewServeMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypePublishPost, j.HandlePublishPostTask)
	return mux
}
