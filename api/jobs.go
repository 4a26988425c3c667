package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/internal/notify"
	"github.com/quickhiresl/backend/pkg/repository"
)

type JobsHandler struct {
	jobRepo  repository.JobRepo
	notifier notify.Notifier
}

func NewJobsHandler(jr repository.JobRepo, n notify.Notifier) *JobsHandler {
	return &JobsHandler{jobRepo: jr, notifier: n}
}

type createJobRequest struct {
	Title          string                     `json:"title"`
	Company        string                     `json:"company"`
	Location       string                     `json:"location"`
	Description    string                     `json:"description"`
	Category       string                     `json:"category"`
	RequiredSkills []string                   `json:"requiredSkills"`
	Salary         int64                      `json:"salary"`
	AvailableDates []models.AvailabilityEntry `json:"availableDates"`
	Status         string                     `json:"status"`
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Location == "" || req.Category == "" {
		writeMessage(w, "title, location and category are required", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case "":
		req.Status = models.JobStatusActive
	case models.JobStatusActive, models.JobStatusClosed, models.JobStatusDraft:
	default:
		writeMessage(w, "invalid status", http.StatusBadRequest)
		return
	}

	job := &models.Job{
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		Description:    req.Description,
		Category:       req.Category,
		RequiredSkills: req.RequiredSkills,
		Salary:         req.Salary,
		PostedBy:       userIDFromContext(r.Context()),
		AvailableDates: req.AvailableDates,
		Status:         req.Status,
	}

	id, err := h.jobRepo.CreateJob(r.Context(), job)
	if err != nil {
		http.Error(w, "failed to create job", http.StatusInternalServerError)
		return
	}
	job.ID = id

	// students learn about new active postings; draft jobs stay silent
	if job.Status == models.JobStatusActive {
		h.notifier.BroadcastJobPosted(r.Context(), job)
	}

	writeJSON(w, job, http.StatusCreated)
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.JobFilter{
		Status:   q.Get("status"),
		Location: q.Get("location"),
		Category: q.Get("category"),
	}
	if filter.Status == "" {
		filter.Status = models.JobStatusActive
	}

	jobs, err := h.jobRepo.ListJobs(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		writeMessage(w, "Job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

type updateJobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobsHandler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, "invalid job id", http.StatusBadRequest)
		return
	}

	var req updateJobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "invalid request", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case models.JobStatusActive, models.JobStatusClosed, models.JobStatusDraft:
	default:
		writeMessage(w, "invalid status", http.StatusBadRequest)
		return
	}

	ownerID := userIDFromContext(r.Context())
	ok, err := h.jobRepo.UpdateJobStatus(r.Context(), id, ownerID, req.Status)
	if err != nil {
		http.Error(w, "failed to update job", http.StatusInternalServerError)
		return
	}
	if !ok {
		// either the job does not exist or the caller does not own it
		job, err := h.jobRepo.GetJobByID(r.Context(), id)
		if err == nil && job == nil {
			writeMessage(w, "Job not found", http.StatusNotFound)
			return
		}
		writeMessage(w, "Not authorized", http.StatusForbidden)
		return
	}

	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil || job == nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}
