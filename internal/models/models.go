package models

import "time"

// Role of a user inside the marketplace.
type Role string

const (
	RoleStudent  Role = "student"
	RoleJobOwner Role = "jobOwner"
)

// Party identifies which side of an application performed an action.
// Stored verbatim in completion details.
type Party string

const (
	PartyJobOwner  Party = "jobOwner"
	PartyApplicant Party = "applicant"
)

// TimeSlot is a half-open interval within a single day, "HH:MM" 24h format.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityEntry describes availability on one calendar date.
// Date is "YYYY-MM-DD"; any time-of-day component on the wire is ignored.
type AvailabilityEntry struct {
	Date      string     `json:"date"`
	IsFullDay bool       `json:"isFullDay"`
	TimeSlots []TimeSlot `json:"timeSlots,omitempty"`
}

// StudentDetails carries the matching preferences owned by the user record.
type StudentDetails struct {
	FullName            string              `json:"fullName,omitempty"`
	PreferredLocations  []string            `json:"preferredLocations,omitempty"`
	PreferredCategories []string            `json:"preferredCategories,omitempty"`
	Skills              []string            `json:"skills,omitempty"`
	Availability        []AvailabilityEntry `json:"availability,omitempty"`
}

type User struct {
	ID             int64          `json:"id" db:"id"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	Role           Role           `json:"role" db:"role"`
	StudentDetails StudentDetails `json:"studentDetails"`
	Created        int64          `json:"created" db:"created"`
	Updated        int64          `json:"updated" db:"updated"`
}

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

type Job struct {
	ID             int64               `json:"id" db:"id"`
	Title          string              `json:"title" db:"title"`
	Company        string              `json:"company" db:"company"`
	Location       string              `json:"location" db:"location"`
	Description    string              `json:"description,omitempty" db:"description"`
	Category       string              `json:"category" db:"category"`
	RequiredSkills []string            `json:"requiredSkills,omitempty"`
	Salary         int64               `json:"salary" db:"salary"`
	PostedBy       int64               `json:"postedBy" db:"posted_by"`
	AvailableDates []AvailabilityEntry `json:"availableDates,omitempty"`
	Status         string              `json:"status" db:"status"`
	Created        int64               `json:"created" db:"created"`
	Updated        int64               `json:"updated" db:"updated"`
}

// ApplicationStatus values. Transitions only ever move forward:
// pending -> accepted|rejected, accepted -> completion_requested ->
// completed. rejected and completed are terminal.
type ApplicationStatus string

const (
	StatusPending             ApplicationStatus = "pending"
	StatusAccepted            ApplicationStatus = "accepted"
	StatusRejected            ApplicationStatus = "rejected"
	StatusCompletionRequested ApplicationStatus = "completion_requested"
	StatusCompleted           ApplicationStatus = "completed"
)

// Application is the stateful entity of the hiring flow.
//
// JobOwnerID is snapshotted from Job.PostedBy when the application is
// created and never re-derived or rewritten afterwards, even if the job
// record later changes hands.
type Application struct {
	ID          int64             `json:"id" db:"id"`
	JobID       int64             `json:"jobId" db:"job_id"`
	ApplicantID int64             `json:"applicantId" db:"applicant_id"`
	JobOwnerID  int64             `json:"jobOwnerId" db:"job_owner_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	CoverLetter string            `json:"coverLetter" db:"cover_letter"`
	AppliedAt   int64             `json:"appliedAt" db:"applied_at"`

	// Completion handshake bookkeeping. RequestedBy is nil until one
	// party requests completion; ConfirmedAt is set when the other
	// party confirms.
	CompletionRequestedBy *Party `json:"completionRequestedBy,omitempty"`
	CompletionRequestedAt *int64 `json:"completionRequestedAt,omitempty"`
	CompletionConfirmedAt *int64 `json:"completionConfirmedAt,omitempty"`

	Updated int64 `json:"updated" db:"updated"`
}

// PartyOf reports which side of the application the given user is on.
// Returns false when the user is not a participant.
func (a *Application) PartyOf(userID int64) (Party, bool) {
	switch userID {
	case a.JobOwnerID:
		return PartyJobOwner, true
	case a.ApplicantID:
		return PartyApplicant, true
	}
	return "", false
}

// Notification types.
const (
	NotificationJobPosted           = "job_posted"
	NotificationApplicationReceived = "application_received"
	NotificationStatusChanged       = "application_status_changed"
)

type Notification struct {
	ID           int64  `json:"id" db:"id"`
	RecipientID  int64  `json:"recipientId" db:"recipient_id"`
	Type         string `json:"type" db:"type"`
	Title        string `json:"title" db:"title"`
	Message      string `json:"message" db:"message"`
	RelatedJobID int64  `json:"relatedJobId,omitempty" db:"related_job_id"`
	Read         bool   `json:"read" db:"read"`
	Created      int64  `json:"created" db:"created"`
}

// MatchResult is computed on demand and never persisted.
type MatchResult struct {
	Score   int                `json:"score"`
	Reasons []string           `json:"reasons"`
	Details map[string]float64 `json:"details,omitempty"`
}

// JobMatch pairs a job with its match result for search responses.
type JobMatch struct {
	Job     *Job               `json:"job"`
	Score   int                `json:"score"`
	Reasons []string           `json:"reasons"`
	Details map[string]float64 `json:"details,omitempty"`
}

// Outbox job statuses, used by the notification worker queue.
const (
	OutboxQueued = "queued"
	OutboxRetry  = "retry"
	OutboxDone   = "done"
	OutboxFailed = "failed"
)

// OutboxJob is one queued notification delivery.
type OutboxJob struct {
	ID          int64      `json:"id"`
	Type        string     `json:"type"`
	Payload     []byte     `json:"payload"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	NextTryAt   *time.Time `json:"next_try_at,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	Created     int64      `json:"created"`
	Updated     int64      `json:"updated"`
}
