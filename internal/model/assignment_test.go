package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestMarkCompleted(t *testing.T) {
    now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

    t.Run("completes assignment and flips an assigned job", func(t *testing.T) {
        a := JobAssignment{ID: 1, UserID: 2, JobID: 3, Status: AssignmentStatusScheduled}
        job := Job{ID: 3, Status: JobStatusAssigned}

        a.MarkCompleted("all done", 5, now, &job)

        assert.Equal(t, AssignmentStatusCompleted, a.Status)
        require.NotNil(t, a.CompletedAt)
        assert.Equal(t, now, *a.CompletedAt)
        require.NotNil(t, a.Assessment)
        assert.Equal(t, "all done", *a.Assessment)
        require.NotNil(t, a.Rating)
        assert.Equal(t, 5, *a.Rating)
        assert.Equal(t, now, a.UpdatedAt)

        assert.Equal(t, JobStatusCompleted, job.Status)
        assert.Equal(t, now, job.UpdatedAt)
    })

    t.Run("leaves a non-assigned job untouched", func(t *testing.T) {
        for _, status := range []string{JobStatusAvailable, JobStatusCompleted, JobStatusCancelled} {
            a := JobAssignment{Status: AssignmentStatusScheduled}
            job := Job{Status: status}

            a.MarkCompleted("done anyway", 3, now, &job)

            assert.Equal(t, AssignmentStatusCompleted, a.Status)
            assert.Equal(t, status, job.Status, "job status %q must not change", status)
        }
    })

    t.Run("tolerates a nil job", func(t *testing.T) {
        a := JobAssignment{Status: AssignmentStatusInProgress}
        a.MarkCompleted("done", 4, now, nil)
        assert.Equal(t, AssignmentStatusCompleted, a.Status)
    })
}

func TestReopensJobOnDelete(t *testing.T) {
    tests := []struct {
        status string
        want   bool
    }{
        {AssignmentStatusScheduled, true},
        {AssignmentStatusInProgress, true},
        {AssignmentStatusCancelled, true},
        {AssignmentStatusCompleted, false},
    }
    for _, tt := range tests {
        a := JobAssignment{Status: tt.status}
        assert.Equal(t, tt.want, a.ReopensJobOnDelete(), "status %q", tt.status)
    }
}

func TestValidAssignmentStatus(t *testing.T) {
    for _, s := range []string{"scheduled", "in_progress", "completed", "cancelled"} {
        assert.True(t, ValidAssignmentStatus(s), s)
    }
    assert.False(t, ValidAssignmentStatus(""))
    assert.False(t, ValidAssignmentStatus("SCHEDULED"))
    assert.False(t, ValidAssignmentStatus("done"))
}

func TestValidJobStatus(t *testing.T) {
    for _, s := range []string{"available", "assigned", "completed", "cancelled"} {
        assert.True(t, ValidJobStatus(s), s)
    }
    assert.False(t, ValidJobStatus("open"))
    assert.False(t, ValidJobStatus("Available"))
}

func TestValidTimezone(t *testing.T) {
    assert.True(t, ValidTimezone(TimezoneUK))
    assert.True(t, ValidTimezone(TimezoneMexico))
    assert.True(t, ValidTimezone(TimezoneIndia))
    assert.False(t, ValidTimezone("uk"))
    assert.False(t, ValidTimezone("UTC"))
}
