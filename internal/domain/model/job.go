package model

import (
	"errors"
	"strings"
	"time"
)

// JobStatus represents the current status of a clone job.
type JobStatus string

const (
	// JobStatusPending indicates a job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusProcessing indicates a job is currently being processed.
	JobStatusProcessing JobStatus = "processing"
	// JobStatusCompleted indicates a job has finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job has failed to complete.
	JobStatusFailed JobStatus = "failed"
)

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusProcessing || s == JobStatusCompleted ||
		s == JobStatusFailed
}

// Terminal returns true if no further transition can occur from this status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job represents one unit of asynchronous cloning work. A job belongs to
// exactly one user; every read is scoped by UserID so jobs are never visible
// across accounts.
type Job struct {
	ID          string     `json:"id"                     db:"id"`
	UserID      string     `json:"user_id"                db:"user_id"`
	Name        string     `json:"name"                   db:"name"`
	Status      JobStatus  `json:"status"                 db:"status"`
	SourceRef   string     `json:"source_ref"             db:"source_ref"`
	OutputRef   *string    `json:"output_ref,omitempty"   db:"output_ref"`
	LastError   *string    `json:"last_error,omitempty"   db:"last_error"`
	CreatedAt   time.Time  `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"             db:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// CreateJobRequest represents a request to create a new clone job.
type CreateJobRequest struct {
	Name      string `json:"name"`
	SourceRef string `json:"source_ref"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.SourceRef) == "" {
		return errors.New("source_ref is required")
	}
	return nil
}

// CreateJobResponse is the immediate acknowledgement returned by job creation,
// before any background processing has run.
type CreateJobResponse struct {
	ID      string    `json:"id"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
}

// JobStatusResponse is the lightweight status projection of a job.
type JobStatusResponse struct {
	Status      JobStatus  `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	LastError   *string    `json:"last_error,omitempty"`
}

// JobStats represents per-status job counts for one user.
type JobStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}
