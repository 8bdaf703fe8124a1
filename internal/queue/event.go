// Package queue defines message payloads exchanged over the message broker.
package queue

// AssignmentCompletedEvent is published when a worker completes a job
// assignment. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type AssignmentCompletedEvent struct {
    AssignmentID uint64 `json:"assignment_id"`
    UserID       uint64 `json:"user_id"`
    UserName     string `json:"user_name"`
    JobID        uint64 `json:"job_id"`
    JobTitle     string `json:"job_title"`
    Location     string `json:"location"`
    Rating       int    `json:"rating"`
    CompletedAt  string `json:"completed_at"`
}
