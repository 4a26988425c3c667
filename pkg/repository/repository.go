package repository

import (
	"context"

	"github.com/quickhiresl/backend/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStudentDetails(ctx context.Context, id int64, details models.StudentDetails) error
	ListUserIDsByRole(ctx context.Context, role models.Role) ([]int64, error)
}

// JobFilter narrows job listing queries. Empty fields are ignored.
type JobFilter struct {
	Status   string
	Location string
	Category string
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJobByID(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error)
	UpdateJobStatus(ctx context.Context, id, ownerID int64, status string) (bool, error)
}

// ApplicationMutation is the field set written by a conditional status
// update. Nil pointer fields clear the corresponding column.
type ApplicationMutation struct {
	Status      models.ApplicationStatus
	RequestedBy *models.Party
	RequestedAt *int64
	ConfirmedAt *int64
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.Application, error)

	// UpdateApplicationIf applies mut to the application only when its
	// current status and completion_requested_by still equal fromStatus
	// and fromRequestedBy. Returns false when the guard did not match
	// (a concurrent writer won the race).
	UpdateApplicationIf(ctx context.Context, id int64, fromStatus models.ApplicationStatus, fromRequestedBy *models.Party, mut ApplicationMutation) (bool, error)
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]models.Notification, error)
	CountByRecipient(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) (bool, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
}

// OutboxRepo backs the notification delivery queue.
type OutboxRepo interface {
	Enqueue(ctx context.Context, j *models.OutboxJob) (int64, error)
	FetchNext(ctx context.Context) (*models.OutboxJob, error)
	UpdateOutboxJob(ctx context.Context, j *models.OutboxJob) error
	MoveToDeadLetter(ctx context.Context, j *models.OutboxJob) error
}
