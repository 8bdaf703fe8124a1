package model

import "time"

// JobAssignment status values. An assignment starts out scheduled;
// completed and cancelled are terminal.
const (
    AssignmentStatusScheduled  = "scheduled"
    AssignmentStatusInProgress = "in_progress"
    AssignmentStatusCompleted  = "completed"
    AssignmentStatusCancelled  = "cancelled"
)

// ValidAssignmentStatus reports whether s is one of the four assignment states.
func ValidAssignmentStatus(s string) bool {
    switch s {
    case AssignmentStatusScheduled, AssignmentStatusInProgress,
        AssignmentStatusCompleted, AssignmentStatusCancelled:
        return true
    }
    return false
}

// JobAssignment binds a worker to a job for a scheduled time, mirroring the
// `job_assignments` table. Rating is set together with Assessment and
// CompletedAt when the assignment completes, and only then.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – the worker.
//  JobID         – the job being worked.
//  ScheduledDate – when the work is planned (UTC).
//  CompletedAt   – completion timestamp (null until completed).
//  Assessment    – free-text report written at completion.
//  Rating        – 1..5 score given at completion.
//  Status        – one of the AssignmentStatus* constants.
//  CreatedAt     – creation timestamp (UTC).
//  UpdatedAt     – last update timestamp (UTC).
type JobAssignment struct {
    ID            uint64     // job_assignments.id
    UserID        uint64     // job_assignments.user_id
    JobID         uint64     // job_assignments.job_id
    ScheduledDate time.Time  // job_assignments.scheduled_date
    CompletedAt   *time.Time // job_assignments.completed_at (nullable)
    Assessment    *string    // job_assignments.assessment (nullable)
    Rating        *int       // job_assignments.rating (nullable)
    Status        string     // job_assignments.status
    CreatedAt     time.Time  // job_assignments.created_at
    UpdatedAt     time.Time  // job_assignments.updated_at
}

// MarkCompleted records the completion of an assignment at the given time
// and, when the parent job is still in the assigned state, moves the job to
// completed as well. Jobs in any other state are left untouched, so calling
// this against an already closed job cannot clobber its status.
func (a *JobAssignment) MarkCompleted(assessment string, rating int, now time.Time, job *Job) {
    a.Status = AssignmentStatusCompleted
    a.CompletedAt = &now
    a.Assessment = &assessment
    a.Rating = &rating
    a.UpdatedAt = now

    if job != nil && job.Status == JobStatusAssigned {
        job.Status = JobStatusCompleted
        job.UpdatedAt = now
    }
}

// ReopensJobOnDelete reports whether deleting this assignment should return
// its job to the available state. Completed assignments represent finished
// work, so removing them leaves the job's status alone.
func (a *JobAssignment) ReopensJobOnDelete() bool {
    return a.Status != AssignmentStatusCompleted
}
