package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJob_DeadlinePassed(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	job := &Job{ApplicationDeadline: &deadline}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before deadline", time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), false},
		{"same day after the stored hour", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), false},
		{"last millisecond of the day", time.Date(2026, 3, 10, 23, 59, 59, 999_000_000, time.UTC), false},
		{"next day", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, job.DeadlinePassed(tt.now))
		})
	}

	assert.False(t, (&Job{}).DeadlinePassed(time.Now()), "no deadline never expires")
}

func TestJob_IsFull(t *testing.T) {
	two := 2
	job := &Job{Openings: &two}

	assert.False(t, job.IsFull(1))
	assert.True(t, job.IsFull(2))
	assert.True(t, job.IsFull(3))
	assert.False(t, (&Job{}).IsFull(100), "unset openings are unlimited")

	zero := 0
	assert.False(t, (&Job{Openings: &zero}).IsFull(5))
	assert.Equal(t, "Unlimited", (&Job{Openings: &zero}).AvailablePositions(5))
	assert.Equal(t, int64(1), job.AvailablePositions(1))
	assert.Equal(t, int64(0), job.AvailablePositions(3))
}

func TestApplicationStatus_Fills(t *testing.T) {
	assert.True(t, ApplicationStatusShortlisted.Fills())
	assert.True(t, ApplicationStatusAccepted.Fills())
	assert.False(t, ApplicationStatusPending.Fills())
	assert.False(t, ApplicationStatusRejected.Fills())
	assert.False(t, ApplicationStatusPending.IsDecision())
}
