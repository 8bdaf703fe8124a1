package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/marketplace-api/internal/model"
	"github.com/jobdesk/marketplace-api/internal/queue"
	"github.com/jobdesk/marketplace-api/internal/repository"
	queue_publisher "github.com/jobdesk/marketplace-api/internal/service"
)

// AssignmentHandler serves the scheduling workflow binding a worker to a
// job. Every write that also moves the parent job's status runs inside a
// transaction so the two rows never drift apart. All methods assume JWT
// middleware has run; assignments are visible only to their own worker.
type AssignmentHandler struct {
	Assignments *repository.AssignmentRepo
	Jobs        *repository.JobRepo
}

func NewAssignmentHandler(assignments *repository.AssignmentRepo, jobs *repository.JobRepo) *AssignmentHandler {
	if assignments == nil || jobs == nil {
		panic("nil repository passed to NewAssignmentHandler")
	}
	return &AssignmentHandler{Assignments: assignments, Jobs: jobs}
}

type createAssignmentReq struct {
	JobID         uint64 `json:"job_id"`
	ScheduledDate string `json:"scheduled_date"`
}

type completeAssignmentReq struct {
	Assessment *string `json:"assessment"`
	Rating     *int    `json:"rating"`
}

// assignmentResp mirrors the assignment serialization of the API.
type assignmentResp struct {
	ID            uint64            `json:"id"`
	User          assignmentUser    `json:"user"`
	Job           assignmentJob     `json:"job"`
	ScheduledDate string            `json:"scheduled_date"`
	CompletedAt   *string           `json:"completed_at"`
	Assessment    *string           `json:"assessment"`
	Rating        *int              `json:"rating"`
	Status        string            `json:"status"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

type assignmentUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type assignmentJob struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

func toAssignmentResp(d repository.AssignmentDetail) assignmentResp {
	resp := assignmentResp{
		ID:            d.ID,
		User:          assignmentUser{ID: d.User.ID, Name: d.User.Name, Email: d.User.Email},
		Job:           assignmentJob{ID: d.Job.ID, Title: d.Job.Title, Location: d.Job.Location, Status: d.Job.Status},
		ScheduledDate: d.ScheduledDate.UTC().Format(timestampLayout),
		Assessment:    d.Assessment,
		Rating:        d.Rating,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:     d.UpdatedAt.UTC().Format(timestampLayout),
	}
	if d.CompletedAt != nil {
		s := d.CompletedAt.UTC().Format(timestampLayout)
		resp.CompletedAt = &s
	}
	return resp
}

// List handles GET /api/assignments. Only the caller's own assignments are
// returned, ordered by scheduled date.
func (h *AssignmentHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	status := strings.TrimSpace(c.QueryParam("status"))
	if status != "" && !model.ValidAssignmentStatus(status) {
		return respondError(c, http.StatusBadRequest, "Invalid status",
			map[string]string{"status": "Status must be: scheduled, in_progress, completed, or cancelled"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Assignments.ListByUser(ctx, userID, status)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	out := make([]assignmentResp, 0, len(list))
	for _, d := range list {
		out = append(out, toAssignmentResp(d))
	}
	return respondSuccess(c, "Assignments retrieved successfully", out)
}

// Get handles GET /api/assignments/:id. Foreign assignments are a 403.
func (h *AssignmentHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid assignment id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Assignments.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Assignment not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	if d.User.ID != userID {
		return respondError(c, http.StatusForbidden, "Access denied", nil)
	}
	return respondSuccess(c, "Assignment retrieved successfully", toAssignmentResp(d))
}

// Create handles POST /api/assignments. The job is claimed with a
// conditional update inside the transaction, so of two workers racing for
// the same available job exactly one wins; the job never mutates when the
// claim loses.
func (h *AssignmentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	var req createAssignmentReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	fieldErrs := map[string]string{}
	if req.JobID == 0 {
		fieldErrs["job_id"] = "Job ID is required"
	}
	if strings.TrimSpace(req.ScheduledDate) == "" {
		fieldErrs["scheduled_date"] = "Scheduled date is required"
	}
	if len(fieldErrs) > 0 {
		return respondError(c, http.StatusBadRequest, "Missing required fields", fieldErrs)
	}
	scheduled, ok := parseScheduledDate(req.ScheduledDate)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid date format", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Existence check up front so an unknown job is a 404, not a 409.
	if _, err := h.Jobs.GetByID(ctx, req.JobID); err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Job not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}

	tx, err := h.Jobs.DB().BeginTx(ctx, nil)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to start transaction", nil)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	claimed, err := h.Jobs.ClaimTx(ctx, tx, req.JobID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to claim job", nil)
	}
	if !claimed {
		return respondError(c, http.StatusConflict, "Job not available", nil)
	}
	id, err := h.Assignments.CreateTx(ctx, tx, userID, req.JobID, scheduled)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create assignment", nil)
	}
	if err := tx.Commit(); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to commit transaction", nil)
	}
	committed = true

	d, err := h.Assignments.GetDetail(ctx, id)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	return respondCreated(c, "Job assigned successfully", toAssignmentResp(d))
}

// Complete handles POST /api/assignments/:id/complete. Only the owning
// worker may complete; assessment and a 1..5 rating are mandatory. The
// parent job moves assigned -> completed in the same transaction and is
// left alone in any other state.
func (h *AssignmentHandler) Complete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid assignment id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Assignment not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	if a.UserID != userID {
		return respondError(c, http.StatusForbidden, "Access denied", nil)
	}

	var req completeAssignmentReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if req.Assessment == nil || req.Rating == nil {
		return respondError(c, http.StatusBadRequest, "Missing required fields",
			map[string]string{"assessment": "Assessment is required", "rating": "Rating is required"})
	}
	if msg := validateRating(*req.Rating); msg != "" {
		return respondError(c, http.StatusBadRequest, "Invalid rating",
			map[string]string{"rating": msg})
	}

	job, err := h.Jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}

	a.MarkCompleted(*req.Assessment, *req.Rating, time.Now().UTC(), &job)

	tx, err := h.Jobs.DB().BeginTx(ctx, nil)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to start transaction", nil)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Assignments.CompleteTx(ctx, tx, a); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to complete assignment", nil)
	}
	// Conditional flip: only a still-assigned job becomes completed.
	if err := h.Jobs.SetStatusIfTx(ctx, tx, a.JobID, model.JobStatusAssigned, model.JobStatusCompleted); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to update job", nil)
	}
	if err := tx.Commit(); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to commit transaction", nil)
	}
	committed = true

	d, err := h.Assignments.GetDetail(ctx, id)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}

	// Best effort event for downstream consumers; failures are logged by
	// the publisher and never surfaced to the client.
	_ = queue_publisher.PublishAssignmentCompleted(ctx, queue.AssignmentCompletedEvent{
		AssignmentID: d.ID,
		UserID:       d.User.ID,
		UserName:     d.User.Name,
		JobID:        d.Job.ID,
		JobTitle:     d.Job.Title,
		Location:     d.Job.Location,
		Rating:       *req.Rating,
		CompletedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return respondSuccess(c, "Assignment completed successfully", toAssignmentResp(d))
}

// Delete handles DELETE /api/assignments/:id. Removing an unfinished
// assignment reopens its job; a completed assignment leaves the job's
// status untouched.
func (h *AssignmentHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid assignment id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Assignment not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	if a.UserID != userID {
		return respondError(c, http.StatusForbidden, "Access denied", nil)
	}

	tx, err := h.Jobs.DB().BeginTx(ctx, nil)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to start transaction", nil)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if a.ReopensJobOnDelete() {
		if err := h.Jobs.SetStatusTx(ctx, tx, a.JobID, model.JobStatusAvailable); err != nil {
			return respondError(c, http.StatusInternalServerError, "Failed to update job", nil)
		}
	}
	if err := h.Assignments.DeleteTx(ctx, tx, id); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to delete assignment", nil)
	}
	if err := tx.Commit(); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to commit transaction", nil)
	}
	committed = true
	return respondSuccess(c, "Assignment deleted successfully", nil)
}
