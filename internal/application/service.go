// Package application enforces the job-application lifecycle:
//
//	pending -> accepted | rejected
//	accepted -> completion_requested -> completed
//
// rejected and completed are terminal and no transition ever moves
// backward. Every mutation is a compare-and-swap against the store, so
// concurrent writers on the same application cannot both win.
package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/quickhiresl/backend/internal/apperr"
	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/internal/notify"
	"github.com/quickhiresl/backend/pkg/repository"
)

type Service struct {
	apps     repository.ApplicationRepo
	jobs     repository.JobRepo
	users    repository.UserRepo
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewService(apps repository.ApplicationRepo, jobs repository.JobRepo, users repository.UserRepo, notifier notify.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{apps: apps, jobs: jobs, users: users, notifier: notifier, logger: logger}
}

// Create files a new application with status pending. The job owner is
// snapshotted from the job at this moment and never re-derived.
func (s *Service) Create(ctx context.Context, jobID, applicantID int64, coverLetter string) (*models.Application, error) {
	if strings.TrimSpace(coverLetter) == "" {
		return nil, apperr.E(apperr.KindValidation, "Cover letter is required")
	}

	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load job")
	}
	if job == nil {
		return nil, apperr.E(apperr.KindNotFound, "Job not found")
	}
	if job.PostedBy == 0 {
		return nil, apperr.E(apperr.KindValidation, "Job owner not found")
	}

	app := &models.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		JobOwnerID:  job.PostedBy,
		Status:      models.StatusPending,
		CoverLetter: coverLetter,
	}
	id, err := s.apps.CreateApplication(ctx, app)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "create application")
	}
	app.ID = id

	s.notifier.Notify(ctx, notify.ApplicationReceivedNotification(job.PostedBy, s.applicantName(ctx, applicantID), job.Title, job.ID))

	return app, nil
}

// UpdateStatus is the only path to accepted and rejected, and only the
// job owner may take it.
func (s *Service) UpdateStatus(ctx context.Context, appID, requesterID int64, newStatus models.ApplicationStatus) (*models.Application, error) {
	if newStatus != models.StatusAccepted && newStatus != models.StatusRejected {
		return nil, apperr.E(apperr.KindValidation, "status must be accepted or rejected")
	}

	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	if requesterID != app.JobOwnerID {
		return nil, apperr.E(apperr.KindForbidden, "Not authorized")
	}
	if app.Status == models.StatusCompleted {
		return nil, apperr.E(apperr.KindConflict, "application is already completed")
	}
	if app.Status == newStatus {
		// idempotent, nothing changed and nobody is notified
		return app, nil
	}
	if app.Status != models.StatusPending {
		return nil, apperr.E(apperr.KindConflict, "cannot move application from %s to %s", app.Status, newStatus)
	}

	if err := s.swap(ctx, app, repository.ApplicationMutation{Status: newStatus}); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, app.ApplicantID, app.JobID, newStatus)

	return s.reload(ctx, appID)
}

// RequestCompletion opens the completion handshake. Either party may
// request, but only from the accepted state and only while no other
// request is outstanding.
func (s *Service) RequestCompletion(ctx context.Context, appID, requesterID int64) (*models.Application, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	party, ok := app.PartyOf(requesterID)
	if !ok {
		return nil, apperr.E(apperr.KindForbidden, "Not authorized")
	}
	if app.Status == models.StatusCompleted {
		return nil, apperr.E(apperr.KindConflict, "application is already completed")
	}
	if app.Status != models.StatusAccepted {
		return nil, apperr.E(apperr.KindConflict, "completion can only be requested for accepted applications (current status: %s)", app.Status)
	}
	if app.CompletionRequestedBy != nil {
		return nil, apperr.E(apperr.KindConflict, "completion has already been requested")
	}

	ts := nowMillis()
	mut := repository.ApplicationMutation{
		Status:      models.StatusCompletionRequested,
		RequestedBy: &party,
		RequestedAt: &ts,
	}
	if err := s.swap(ctx, app, mut); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, s.counterparty(app, party), app.JobID, models.StatusCompletionRequested)

	return s.reload(ctx, appID)
}

// CancelCompletionRequest withdraws an outstanding completion request,
// returning the application to accepted. Only the party who made the
// request may cancel it.
func (s *Service) CancelCompletionRequest(ctx context.Context, appID, requesterID int64) (*models.Application, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	party, ok := app.PartyOf(requesterID)
	if !ok {
		return nil, apperr.E(apperr.KindForbidden, "Not authorized")
	}
	if app.Status != models.StatusCompletionRequested {
		return nil, apperr.E(apperr.KindConflict, "no completion request to cancel (current status: %s)", app.Status)
	}
	if app.CompletionRequestedBy == nil || *app.CompletionRequestedBy != party {
		return nil, apperr.E(apperr.KindForbidden, "only the requesting party can cancel the completion request")
	}

	// clears requestedBy/requestedAt so a fresh request can be made
	if err := s.swap(ctx, app, repository.ApplicationMutation{Status: models.StatusAccepted}); err != nil {
		return nil, err
	}

	job := s.loadJobQuiet(ctx, app.JobID)
	var title string
	if job != nil {
		title = job.Title
	}
	s.notifier.Notify(ctx, notify.CompletionCancelledNotification(s.counterparty(app, party), title, app.JobID))

	return s.reload(ctx, appID)
}

// ConfirmCompletion closes the handshake. The confirming party must be
// the one who did NOT request completion; self-confirmation is rejected.
func (s *Service) ConfirmCompletion(ctx context.Context, appID, requesterID int64) (*models.Application, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	party, ok := app.PartyOf(requesterID)
	if !ok {
		return nil, apperr.E(apperr.KindForbidden, "Not authorized")
	}
	if app.Status == models.StatusCompleted {
		return nil, apperr.E(apperr.KindConflict, "application is already completed")
	}
	if app.Status != models.StatusCompletionRequested {
		return nil, apperr.E(apperr.KindConflict, "no completion request to confirm (current status: %s)", app.Status)
	}
	if app.CompletionRequestedBy != nil && *app.CompletionRequestedBy == party {
		return nil, apperr.E(apperr.KindConflict, "completion must be confirmed by the other party")
	}

	ts := nowMillis()
	mut := repository.ApplicationMutation{
		Status:      models.StatusCompleted,
		RequestedBy: app.CompletionRequestedBy,
		RequestedAt: app.CompletionRequestedAt,
		ConfirmedAt: &ts,
	}
	if err := s.swap(ctx, app, mut); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, s.counterparty(app, party), app.JobID, models.StatusCompleted)

	return s.reload(ctx, appID)
}

// ListByOwner returns applications where the requester is the job owner.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]models.Application, error) {
	apps, err := s.apps.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list applications")
	}
	return apps, nil
}

// ListByApplicant returns the requester's own applications.
func (s *Service) ListByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {
	apps, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list applications")
	}
	return apps, nil
}

// ListByJob returns a job's applications; only the posting owner may see
// them.
func (s *Service) ListByJob(ctx context.Context, jobID, requesterID int64) ([]models.Application, error) {
	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load job")
	}
	if job == nil {
		return nil, apperr.E(apperr.KindNotFound, "Job not found")
	}
	if job.PostedBy != requesterID {
		return nil, apperr.E(apperr.KindForbidden, "Not authorized")
	}

	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list applications")
	}
	return apps, nil
}

func (s *Service) load(ctx context.Context, appID int64) (*models.Application, error) {
	app, err := s.apps.GetApplicationByID(ctx, appID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load application")
	}
	if app == nil {
		return nil, apperr.E(apperr.KindNotFound, "Application not found")
	}
	return app, nil
}

func (s *Service) reload(ctx context.Context, appID int64) (*models.Application, error) {
	app, err := s.apps.GetApplicationByID(ctx, appID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "reload application")
	}
	return app, nil
}

// swap applies mut guarded by the application's observed status and
// requestedBy. A guard miss means a concurrent transition won the race.
func (s *Service) swap(ctx context.Context, app *models.Application, mut repository.ApplicationMutation) error {
	ok, err := s.apps.UpdateApplicationIf(ctx, app.ID, app.Status, app.CompletionRequestedBy, mut)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "update application")
	}
	if !ok {
		return apperr.E(apperr.KindConflict, "application was modified concurrently, retry")
	}
	return nil
}

// counterparty resolves the user id of the side opposite to party.
func (s *Service) counterparty(app *models.Application, party models.Party) int64 {
	if party == models.PartyJobOwner {
		return app.ApplicantID
	}
	return app.JobOwnerID
}

func (s *Service) notifyStatusChange(ctx context.Context, recipientID, jobID int64, newStatus models.ApplicationStatus) {
	job := s.loadJobQuiet(ctx, jobID)
	var title string
	if job != nil {
		title = job.Title
	}
	s.notifier.Notify(ctx, notify.StatusChangedNotification(recipientID, title, jobID, newStatus))
}

// loadJobQuiet fetches a job for notification text only; failures are
// logged, never surfaced.
func (s *Service) loadJobQuiet(ctx context.Context, jobID int64) *models.Job {
	job, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		s.logger.Error("load job for notification", "job_id", jobID, "err", err)
		return nil
	}
	return job
}

func (s *Service) applicantName(ctx context.Context, applicantID int64) string {
	u, err := s.users.GetUserByID(ctx, applicantID)
	if err != nil || u == nil {
		return ""
	}
	return u.StudentDetails.FullName
}
