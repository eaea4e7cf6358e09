package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer submits one-off tasks outside the recurring schedule.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer builds Enqueuer instance.
func NewEnqueuer(redisAddr string) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

// Enqueue submits a task with a fresh unique ID.
func (e *Enqueuer) Enqueue(ctx context.Context, task *asynq.Task) error {
	_, err := e.client.EnqueueContext(ctx, task, asynq.TaskID(uuid.NewString()))
	return err
}

// Close releases the underlying connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
