package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/quickhiresl/backend/internal/application"
	"github.com/quickhiresl/backend/internal/models"
)

type ApplicationsHandler struct {
	svc *application.Service
}

func NewApplicationsHandler(svc *application.Service) *ApplicationsHandler {
	return &ApplicationsHandler{svc: svc}
}

type createApplicationRequest struct {
	JobID       int64  `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "invalid request", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Create(r.Context(), req.JobID, userIDFromContext(r.Context()), req.CoverLetter)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, app, http.StatusCreated)
}

type updateStatusRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, "invalid application id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "invalid request", http.StatusBadRequest)
		return
	}

	app, err := h.svc.UpdateStatus(r.Context(), id, userIDFromContext(r.Context()), req.Status)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, app, http.StatusOK)
}

func (h *ApplicationsHandler) RequestCompletion(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.RequestCompletion)
}

func (h *ApplicationsHandler) ConfirmCompletion(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.ConfirmCompletion)
}

func (h *ApplicationsHandler) CancelCompletion(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CancelCompletionRequest)
}

func (h *ApplicationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListByApplicant(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeAppError(w, err)
		return
	}
	h.writeList(w, apps)
}

func (h *ApplicationsHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListByOwner(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeAppError(w, err)
		return
	}
	h.writeList(w, apps)
}

func (h *ApplicationsHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "jobId")
	if err != nil {
		writeMessage(w, "invalid job id", http.StatusBadRequest)
		return
	}

	apps, err := h.svc.ListByJob(r.Context(), jobID, userIDFromContext(r.Context()))
	if err != nil {
		writeAppError(w, err)
		return
	}
	h.writeList(w, apps)
}

type transitionFunc func(ctx context.Context, appID, requesterID int64) (*models.Application, error)

func (h *ApplicationsHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, "invalid application id", http.StatusBadRequest)
		return
	}

	app, err := fn(r.Context(), id, userIDFromContext(r.Context()))
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, app, http.StatusOK)
}

func (h *ApplicationsHandler) writeList(w http.ResponseWriter, apps []models.Application) {
	if apps == nil {
		apps = []models.Application{}
	}
	writeJSON(w, apps, http.StatusOK)
}
