package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return errors.New("boom")
	})

	// A failing job must not stop the remaining jobs from running.
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), first.Load())
	assert.Equal(t, int32(2), second.Load())
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	s.Stop()

	// The immediate run on start must have happened before Stop returned.
	assert.GreaterOrEqual(t, runs.Load(), int32(1))
}
