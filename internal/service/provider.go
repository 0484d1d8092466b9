package service

import (
	"context"
	"fmt"
	"time"
)

// Synthesizer produces the cloned voice artifact for a job and returns a
// reference to its output.
type Synthesizer interface {
	Synthesize(ctx context.Context, jobID string) (outputRef string, err error)
}

// StubSynthesizer simulates synthesis by waiting for a fixed delay before
// reporting a deterministic output path. It stands in for a real model
// backend during development and tests.
type StubSynthesizer struct {
	Delay time.Duration
}

// Synthesize waits for the configured delay, honoring ctx cancellation.
func (s *StubSynthesizer) Synthesize(ctx context.Context, jobID string) (string, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Sprintf("output/clone_%s.wav", jobID), nil
}
