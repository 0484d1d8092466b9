package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/voiceforge/voiceforge/internal/domain/model"
)

// UserBuilder provides a fluent interface for building User rows for testing.
type UserBuilder struct {
	user *model.User
}

// NewUser creates a UserBuilder with sensible defaults. Each builder gets a
// unique email and username so tests can insert several without collisions.
func NewUser() *UserBuilder {
	suffix := uuid.NewString()[:8]
	return &UserBuilder{
		user: &model.User{
			Email:        "user-" + suffix + "@example.com",
			Username:     "user_" + suffix,
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmno",
		},
	}
}

// WithEmail sets the email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithUsername sets the username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.user.Username = username
	return b
}

// WithPasswordHash sets the stored bcrypt hash.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.user.PasswordHash = hash
	return b
}

// Build returns the built user.
func (b *UserBuilder) Build() *model.User {
	return b.user
}

// Insert writes the user directly to the database and returns it with its
// generated id and timestamps.
func (b *UserBuilder) Insert(t TestingTB, db *sql.DB) *model.User {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := db.QueryRowContext(ctx, `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		b.user.Email, b.user.Username, b.user.PasswordHash,
	)
	if err := row.Scan(&b.user.ID, &b.user.CreatedAt, &b.user.UpdatedAt); err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
	return b.user
}

// JobRequestBuilder provides a fluent interface for building CreateJobRequest
// objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Name:      "test clone",
			SourceRef: "samples/voice.wav",
		},
	}
}

// WithName sets the job name.
func (b *JobRequestBuilder) WithName(name string) *JobRequestBuilder {
	b.req.Name = name
	return b
}

// WithSourceRef sets the source sample reference.
func (b *JobRequestBuilder) WithSourceRef(ref string) *JobRequestBuilder {
	b.req.SourceRef = ref
	return b
}

// Build returns the built request.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}
