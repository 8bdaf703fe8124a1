package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/marketplace-api/internal/model"
	"github.com/jobdesk/marketplace-api/internal/repository"
)

// JobHandler serves the job CRUD endpoints. Deletion cascades to the
// job's assignments inside a single transaction.
type JobHandler struct {
	Jobs *repository.JobRepo
}

func NewJobHandler(jobs *repository.JobRepo) *JobHandler {
	if jobs == nil {
		panic("nil repository passed to NewJobHandler")
	}
	return &JobHandler{Jobs: jobs}
}

type createJobReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Location    string  `json:"location"`
}

type updateJobReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

// jobResp mirrors the job serialization of the API: timestamps as
// "YYYY-MM-DD hh:mm:ss" in UTC.
type jobResp struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

const timestampLayout = "2006-01-02 15:04:05"

func toJobResp(j model.Job) jobResp {
	return jobResp{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		Status:      j.Status,
		CreatedAt:   j.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   j.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func toJobResps(jobs []model.Job) []jobResp {
	out := make([]jobResp, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResp(j))
	}
	return out
}

// List handles GET /api/jobs. The optional ?status= query narrows the
// result; jobs come back newest first.
func (h *JobHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	if status != "" && !model.ValidJobStatus(status) {
		return respondError(c, http.StatusBadRequest, "Invalid status",
			map[string]string{"status": "Status must be: available, assigned, completed, or cancelled"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.List(ctx, status)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	return respondSuccess(c, "Jobs retrieved successfully", toJobResps(jobs))
}

// Available handles GET /api/jobs/available, a shorthand for
// ?status=available.
func (h *JobHandler) Available(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.List(ctx, model.JobStatusAvailable)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	return respondSuccess(c, "Jobs retrieved successfully", toJobResps(jobs))
}

// Get handles GET /api/jobs/:id.
func (h *JobHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid job id", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	j, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Job not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	return respondSuccess(c, "Job retrieved successfully", toJobResp(j))
}

// Create handles POST /api/jobs. New jobs always start out available.
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)

	fieldErrs := map[string]string{}
	if req.Title == "" {
		fieldErrs["title"] = "Title is required"
	}
	if req.Location == "" {
		fieldErrs["location"] = "Location is required"
	}
	if len(fieldErrs) > 0 {
		return respondError(c, http.StatusBadRequest, "Missing required fields", fieldErrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	j, err := h.Jobs.Create(ctx, req.Title, req.Location, req.Description)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create job", nil)
	}
	return respondCreated(c, "Job created successfully", toJobResp(j))
}

// Update handles PUT/PATCH /api/jobs/:id. Only fields present in the body
// are mutated; a status value outside the four known states is rejected.
func (h *JobHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid job id", nil)
	}
	var req updateJobReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	j, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Job not found")
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}

	if req.Title != nil {
		j.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		j.Description = req.Description
	}
	if req.Location != nil {
		j.Location = strings.TrimSpace(*req.Location)
	}
	if req.Status != nil {
		if !model.ValidJobStatus(*req.Status) {
			return respondError(c, http.StatusBadRequest, "Invalid status",
				map[string]string{"status": "Status must be: available, assigned, completed, or cancelled"})
		}
		j.Status = *req.Status
	}

	updated, err := h.Jobs.Update(ctx, j)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to update job", nil)
	}
	return respondSuccess(c, "Job updated successfully", toJobResp(updated))
}

// Delete handles DELETE /api/jobs/:id. Dependent assignments are removed
// first, in the same transaction as the job row.
func (h *JobHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid job id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

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

	if err := h.Jobs.DeleteTx(ctx, tx, id); err != nil {
		if err == repository.ErrNotFound {
			return respondNotFound(c, "Job not found")
		}
		return respondError(c, http.StatusInternalServerError, "Failed to delete job", nil)
	}
	if err := tx.Commit(); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to commit transaction", nil)
	}
	committed = true
	return respondSuccess(c, "Job deleted successfully", nil)
}
