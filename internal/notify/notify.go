// Package notify delivers user notifications through a persistent outbox
// queue. Producers enqueue post-commit; a worker pool drains the queue and
// writes notification rows. Enqueue or delivery failure is logged and
// never propagated to the primary operation.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

// Outbox job types.
const (
	TypeDeliver      = "notification.deliver"
	TypeBroadcastJob = "notification.broadcast_job"
)

// Notifier is the fire-and-forget sink consumed by the engines.
type Notifier interface {
	// Notify queues a notification for one recipient.
	Notify(ctx context.Context, n models.Notification)
	// BroadcastJobPosted queues a job_posted notification for every student.
	BroadcastJobPosted(ctx context.Context, job *models.Job)
}

// OutboxNotifier enqueues deliveries into the notification outbox.
type OutboxNotifier struct {
	outbox repository.OutboxRepo
	logger *slog.Logger
}

var _ Notifier = (*OutboxNotifier)(nil)

func NewOutboxNotifier(outbox repository.OutboxRepo, logger *slog.Logger) *OutboxNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutboxNotifier{outbox: outbox, logger: logger}
}

func (o *OutboxNotifier) Notify(ctx context.Context, n models.Notification) {
	o.enqueue(ctx, TypeDeliver, n)
}

type broadcastPayload struct {
	JobID   int64  `json:"job_id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

func (o *OutboxNotifier) BroadcastJobPosted(ctx context.Context, job *models.Job) {
	if job == nil {
		return
	}
	o.enqueue(ctx, TypeBroadcastJob, broadcastPayload{JobID: job.ID, Title: job.Title, Company: job.Company})
}

func (o *OutboxNotifier) enqueue(ctx context.Context, typ string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		o.logger.Error("marshal notification payload", "type", typ, "err", err)
		return
	}
	if _, err := o.outbox.Enqueue(ctx, &models.OutboxJob{Type: typ, Payload: b, MaxAttempts: 5}); err != nil {
		// the primary mutation already committed; losing a notification
		// must not fail the request
		o.logger.Error("enqueue notification", "type", typ, "err", err)
	}
}
