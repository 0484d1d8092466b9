package core

import (
	"context"

	"github.com/voiceforge/voiceforge/internal/domain/model"
)

// This file contains repository and queue interface definitions (ports in
// hexagonal architecture). Service implementations depend on these contracts,
// not on concrete implementations.

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// MarkFailedStaleParams groups parameters for JobRepository.MarkFailedStale.
type MarkFailedStaleParams struct {
	OlderThanSeconds int
	Reason           string
}

// JobRepository defines the interface for clone job data operations.
// Every read takes the owning user id; ownership mismatches surface as
// not-found so the existence of other users' jobs never leaks.
type JobRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateJobRequest) (*model.Job, error)
	Get(ctx context.Context, userID, jobID string) (*model.Job, error)
	List(ctx context.Context, userID string) ([]*model.Job, error)
	Status(ctx context.Context, userID, jobID string) (*model.JobStatusResponse, error)
	Stats(ctx context.Context, userID string) (*model.JobStats, error)

	// MarkProcessing transitions pending→processing. Returns false when the
	// job was not in pending (already picked up, or reaped).
	MarkProcessing(ctx context.Context, jobID string) (bool, error)
	// MarkCompleted transitions processing→completed and records the output
	// reference and completion time.
	MarkCompleted(ctx context.Context, jobID, outputRef string) (bool, error)
	// MarkFailed transitions a non-terminal job to failed with a reason.
	MarkFailed(ctx context.Context, jobID, errMsg string) (bool, error)
	// MarkFailedStale fails non-terminal jobs untouched for longer than the
	// given age and returns how many rows were updated.
	MarkFailedStale(ctx context.Context, params MarkFailedStaleParams) (int, error)
	// RecoverPending returns the ids of all pending jobs, oldest first,
	// refreshing their age. Used on startup to rebuild the work queue.
	RecoverPending(ctx context.Context) ([]string, error)
}

// JobQueue decouples job creation from job execution. Enqueue must never
// block the caller; a full queue is reported as an error so the producer can
// fail the job instead of leaving it stuck in pending.
type JobQueue interface {
	Enqueue(jobID string) error
}

// TokenVerifier validates a raw bearer token and returns the claims as a
// trusted identity. The gateway depends on this contract rather than on the
// auth service's HTTP client directly.
type TokenVerifier interface {
	Validate(ctx context.Context, rawToken string) (*VerifiedClaims, error)
}

// VerifiedClaims is the identity extracted from a successfully validated token.
type VerifiedClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}
