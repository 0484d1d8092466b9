// Package httpx provides the HTTP surface of the voiceforge services.
package httpx

import (
	"net/http"

	domainauth "github.com/voiceforge/voiceforge/internal/domain/auth"
	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
	"github.com/voiceforge/voiceforge/internal/service"
)

// JobHandlers provides HTTP handlers for clone job operations. Every handler
// reads the caller identity from the request context; routes are registered
// behind RequireIdentity so the identity is always present.
type JobHandlers struct {
	Svc *service.JobService
}

// callerIdentity returns the identity from the request context, writing a 401
// when it is absent. Routes are mounted behind RequireIdentity, so absence
// means a wiring mistake rather than a client error.
func callerIdentity(w http.ResponseWriter, r *http.Request) (domainauth.Identity, bool) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		RenderError(w, apperrors.Unauthorized("authentication required"))
		return domainauth.Identity{}, false
	}
	return identity, true
}

// CreateJob handles HTTP requests to create a new clone job.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Svc.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, resp)
}

// ListJobs handles HTTP requests to list the caller's clone jobs, newest first.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	jobs, err := h.Svc.List(r.Context(), identity.UserID)
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// GetJob handles HTTP requests for a single clone job owned by the caller.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.Get(r.Context(), identity.UserID, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// GetJobStatus handles HTTP requests for the status projection of a job.
func (h *JobHandlers) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	status, err := h.Svc.Status(r.Context(), identity.UserID, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, status)
}

// GetJobStats handles HTTP requests for the caller's per-status job counts.
func (h *JobHandlers) GetJobStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	stats, err := h.Svc.Stats(r.Context(), identity.UserID)
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
