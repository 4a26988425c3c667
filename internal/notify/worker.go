package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

// Handler processes one outbox job.
type Handler func(ctx context.Context, j *models.OutboxJob) error

// WorkerPool drains the notification outbox.
type WorkerPool struct {
	repo        repository.OutboxRepo
	handlers    map[string]Handler
	logger      *slog.Logger
	workerCount int
	stop        chan struct{}
	wg          sync.WaitGroup
}

func NewWorkerPool(repo repository.OutboxRepo, handlers map[string]Handler, logger *slog.Logger, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{repo: repo, handlers: handlers, logger: logger, workerCount: workerCount, stop: make(chan struct{})}
}

// Start launches the worker goroutines
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop signals workers to stop and waits for them
func (p *WorkerPool) Stop() {
	close(p.stop)
	p.wg.Wait()
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			p.logger.Info("notify worker stopping", "id", id)
			return
		case <-ctx.Done():
			p.logger.Info("context canceled, notify worker exiting", "id", id)
			return
		default:
			job, err := p.repo.FetchNext(ctx)
			if err != nil {
				p.logger.Error("fetch outbox job", "err", err)
				p.sleep(time.Second)
				continue
			}
			if job == nil {
				// nothing to do
				p.sleep(200 * time.Millisecond)
				continue
			}
			p.process(ctx, job)
		}
	}
}

// sleep waits without blocking shutdown.
func (p *WorkerPool) sleep(d time.Duration) {
	select {
	case <-p.stop:
	case <-time.After(d):
	}
}

func (p *WorkerPool) process(ctx context.Context, job *models.OutboxJob) {
	h, ok := p.handlers[job.Type]
	if !ok {
		job.Status = models.OutboxFailed
		job.LastError = "no handler"
		if err := p.repo.MoveToDeadLetter(ctx, job); err != nil {
			p.logger.Error("move to dead letter", "err", err)
		}
		return
	}

	err := h(ctx, job)
	if err == nil {
		job.Status = models.OutboxDone
		if upErr := p.repo.UpdateOutboxJob(ctx, job); upErr != nil {
			p.logger.Error("mark outbox job done", "err", upErr)
		}
		return
	}

	job.Attempts++
	job.LastError = err.Error()
	if job.Attempts >= job.MaxAttempts {
		job.Status = models.OutboxFailed
		if mvErr := p.repo.MoveToDeadLetter(ctx, job); mvErr != nil {
			p.logger.Error("move to dead letter", "err", mvErr)
		}
		return
	}

	// schedule retry with backoff
	t := time.Now().Add(BackoffDuration(job.Attempts))
	job.NextTryAt = &t
	job.Status = models.OutboxRetry
	if upErr := p.repo.UpdateOutboxJob(ctx, job); upErr != nil {
		p.logger.Error("update outbox job for retry", "err", upErr)
	}
}

// BackoffDuration returns exponential backoff duration for attempt n
func BackoffDuration(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	const cap = 5 * time.Minute
	if d > cap {
		return cap
	}
	return d
}

// DeliveryHandlers builds the handler set for the notification queue.
func DeliveryHandlers(notifications repository.NotificationRepo, users repository.UserRepo) map[string]Handler {
	return map[string]Handler{
		TypeDeliver: func(ctx context.Context, j *models.OutboxJob) error {
			var n models.Notification
			if err := json.Unmarshal(j.Payload, &n); err != nil {
				return fmt.Errorf("decode notification payload: %w", err)
			}
			if _, err := notifications.CreateNotification(ctx, &n); err != nil {
				return fmt.Errorf("create notification: %w", err)
			}
			return nil
		},
		TypeBroadcastJob: func(ctx context.Context, j *models.OutboxJob) error {
			var p broadcastPayload
			if err := json.Unmarshal(j.Payload, &p); err != nil {
				return fmt.Errorf("decode broadcast payload: %w", err)
			}
			ids, err := users.ListUserIDsByRole(ctx, models.RoleStudent)
			if err != nil {
				return fmt.Errorf("list students: %w", err)
			}
			for _, id := range ids {
				n := JobPostedNotification(id, p.JobID, p.Title, p.Company)
				if _, err := notifications.CreateNotification(ctx, &n); err != nil {
					return fmt.Errorf("create job_posted notification: %w", err)
				}
			}
			return nil
		},
	}
}
