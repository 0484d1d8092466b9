package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/voiceforge/voiceforge/internal/core"
	"github.com/voiceforge/voiceforge/internal/mocks"
)

func TestNewReaper(t *testing.T) {
	t.Run("requires job repository", func(t *testing.T) {
		_, err := NewReaper(ReaperOptions{})
		require.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		r, err := NewReaper(ReaperOptions{Jobs: mocks.NewMockJobRepository(ctrl)})
		require.NoError(t, err)
		assert.Equal(t, time.Minute, r.interval)
		assert.Equal(t, 10*time.Minute, r.staleAfter)
	})
}

func TestReaperRun(t *testing.T) {
	t.Run("sweeps immediately on startup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mocks.NewMockJobRepository(ctrl)

		swept := make(chan core.MarkFailedStaleParams, 1)
		jobs.EXPECT().
			MarkFailedStale(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params core.MarkFailedStaleParams) (int, error) {
				swept <- params
				return 2, nil
			}).
			MinTimes(1)

		r, err := NewReaper(ReaperOptions{
			Jobs:       jobs,
			Interval:   time.Hour,
			StaleAfter: 10 * time.Minute,
		})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- r.Run(ctx) }()

		select {
		case params := <-swept:
			assert.Equal(t, 600, params.OlderThanSeconds)
			assert.NotEmpty(t, params.Reason)
		case <-time.After(5 * time.Second):
			t.Fatal("startup sweep did not happen")
		}

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("sweep errors do not stop the reaper", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mocks.NewMockJobRepository(ctrl)

		calls := make(chan struct{}, 4)
		jobs.EXPECT().
			MarkFailedStale(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, core.MarkFailedStaleParams) (int, error) {
				calls <- struct{}{}
				return 0, errors.New("db down")
			}).
			MinTimes(2)

		r, err := NewReaper(ReaperOptions{
			Jobs:       jobs,
			Interval:   10 * time.Millisecond,
			StaleAfter: time.Minute,
		})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- r.Run(ctx) }()

		for i := 0; i < 2; i++ {
			select {
			case <-calls:
			case <-time.After(5 * time.Second):
				t.Fatal("reaper stopped sweeping after an error")
			}
		}

		cancel()
		require.NoError(t, <-done)
	})
}
