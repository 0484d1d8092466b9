// Package mocks provides mock implementations for testing the voiceforge services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/voiceforge/voiceforge/internal/core UserRepository

// Generate mock for JobRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/voiceforge/voiceforge/internal/core JobRepository

// Generate mock for JobQueue interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_queue_mock.go github.com/voiceforge/voiceforge/internal/core JobQueue

// Generate mock for TokenVerifier interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_verifier_mock.go github.com/voiceforge/voiceforge/internal/core TokenVerifier
