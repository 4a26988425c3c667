// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"context"
	"sync"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

type Mocks struct {
	Users    *UserRepo
	Jobs     *JobRepo
	Apps     *ApplicationRepo
	Notifier *Notifier
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:    &UserRepo{byID: map[int64]*models.User{}},
		Jobs:     &JobRepo{},
		Apps:     &ApplicationRepo{byID: map[int64]*models.Application{}},
		Notifier: &Notifier{},
	}
}

type UserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64
	Err    error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *u
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) UpdateStudentDetails(ctx context.Context, id int64, details models.StudentDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.StudentDetails = details
	}
	return nil
}

func (m *UserRepo) ListUserIDsByRole(ctx context.Context, role models.Role) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int64
	for id, u := range m.byID {
		if u.Role == role {
			out = append(out, id)
		}
	}
	return out, nil
}

// Add stores a user as-is, keeping its ID.
func (m *UserRepo) Add(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	if u.ID > m.nextID {
		m.nextID = u.ID
	}
}

type JobRepo struct {
	mu     sync.Mutex
	jobs   []*models.Job
	nextID int64
	Err    error
}

var _ repository.JobRepo = (*JobRepo)(nil)

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *j
	cp.ID = m.nextID
	m.jobs = append(m.jobs, &cp)
	return cp.ID, nil
}

func (m *JobRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

// ListJobs filters in insertion order, which tests rely on for stable
// tie-breaking.
func (m *JobRepo) ListJobs(ctx context.Context, filter repository.JobFilter) ([]models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Job
	for _, j := range m.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.Location != "" && j.Location != filter.Location {
			continue
		}
		if filter.Category != "" && j.Category != filter.Category {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (m *JobRepo) UpdateJobStatus(ctx context.Context, id, ownerID int64, status string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.ID == id && j.PostedBy == ownerID {
			j.Status = status
			return true, nil
		}
	}
	return false, nil
}

// Add stores a job as-is, keeping its ID.
func (m *JobRepo) Add(j *models.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, j)
	if j.ID > m.nextID {
		m.nextID = j.ID
	}
}

type ApplicationRepo struct {
	mu     sync.Mutex
	byID   map[int64]*models.Application
	nextID int64
	Err    error
}

var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	if cp.Status == "" {
		cp.Status = models.StatusPending
	}
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *ApplicationRepo) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {
	return m.list(func(a *models.Application) bool { return a.ApplicantID == applicantID })
}

func (m *ApplicationRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Application, error) {
	return m.list(func(a *models.Application) bool { return a.JobOwnerID == ownerID })
}

func (m *ApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	return m.list(func(a *models.Application) bool { return a.JobID == jobID })
}

func (m *ApplicationRepo) list(match func(*models.Application) bool) ([]models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, a := range m.byID {
		if match(a) {
			out = append(out, *a)
		}
	}
	return out, nil
}

// UpdateApplicationIf mirrors the sqlite compare-and-swap semantics.
func (m *ApplicationRepo) UpdateApplicationIf(ctx context.Context, id int64, fromStatus models.ApplicationStatus, fromRequestedBy *models.Party, mut repository.ApplicationMutation) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok || a.Status != fromStatus {
		return false, nil
	}
	if (a.CompletionRequestedBy == nil) != (fromRequestedBy == nil) {
		return false, nil
	}
	if fromRequestedBy != nil && *a.CompletionRequestedBy != *fromRequestedBy {
		return false, nil
	}

	a.Status = mut.Status
	a.CompletionRequestedBy = mut.RequestedBy
	a.CompletionRequestedAt = mut.RequestedAt
	a.CompletionConfirmedAt = mut.ConfirmedAt
	return true, nil
}

// Add stores an application as-is, keeping its ID.
func (m *ApplicationRepo) Add(a *models.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[a.ID] = a
	if a.ID > m.nextID {
		m.nextID = a.ID
	}
}

// Notifier records notifications instead of delivering them.
type Notifier struct {
	mu        sync.Mutex
	Sent      []models.Notification
	Broadcast []int64
}

func (n *Notifier) Notify(ctx context.Context, notification models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, notification)
}

func (n *Notifier) BroadcastJobPosted(ctx context.Context, job *models.Job) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if job != nil {
		n.Broadcast = append(n.Broadcast, job.ID)
	}
}

// Last returns the most recent notification, if any.
func (n *Notifier) Last() (models.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Sent) == 0 {
		return models.Notification{}, false
	}
	return n.Sent[len(n.Sent)-1], true
}
