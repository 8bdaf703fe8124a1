package model

import "time"

// Job status values. A job starts out available, becomes assigned when a
// worker schedules it, and ends up completed or cancelled.
const (
    JobStatusAvailable = "available"
    JobStatusAssigned  = "assigned"
    JobStatusCompleted = "completed"
    JobStatusCancelled = "cancelled"
)

// ValidJobStatus reports whether s is one of the four job states.
func ValidJobStatus(s string) bool {
    switch s {
    case JobStatusAvailable, JobStatusAssigned, JobStatusCompleted, JobStatusCancelled:
        return true
    }
    return false
}

// Job is a work item posted to the marketplace, mirroring the `jobs` table.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short summary of the work.
//  Description – optional longer text.
//  Location    – where the work takes place.
//  Status      – one of the JobStatus* constants.
//  CreatedAt   – creation timestamp (UTC).
//  UpdatedAt   – last update timestamp (UTC).
type Job struct {
    ID          uint64    // jobs.id
    Title       string    // jobs.title
    Description *string   // jobs.description (nullable)
    Location    string    // jobs.location
    Status      string    // jobs.status
    CreatedAt   time.Time // jobs.created_at
    UpdatedAt   time.Time // jobs.updated_at
}
