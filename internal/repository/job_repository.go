package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/jobdesk/marketplace-api/internal/model"
)

// JobRepo provides CRUD operations for jobs. Status flips that belong to
// the assignment workflow are exposed as ...Tx variants so handlers can
// run them atomically with assignment writes. Timestamps are assigned
// explicitly here; the schema has no triggers.
type JobRepo struct {
    db *sql.DB
}

// NewJobRepo returns a new JobRepo bound to the given database.
func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning jobs and assignments.
func (r *JobRepo) DB() *sql.DB { return r.db }

const jobColumns = "id, title, description, location, status, created_at, updated_at"

func scanJob(row interface{ Scan(...any) error }) (model.Job, error) {
    var (
        j    model.Job
        desc sql.NullString
    )
    err := row.Scan(&j.ID, &j.Title, &desc, &j.Location, &j.Status, &j.CreatedAt, &j.UpdatedAt)
    if err != nil {
        return model.Job{}, err
    }
    if desc.Valid {
        d := desc.String
        j.Description = &d
    }
    return j, nil
}

// Create inserts a job in the available state and returns the stored row.
func (r *JobRepo) Create(ctx context.Context, title, location string, description *string) (model.Job, error) {
    now := time.Now().UTC()
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO jobs (title, description, location, status, created_at, updated_at) VALUES (?,?,?,?,?,?)",
        title, description, location, model.JobStatusAvailable, now, now)
    if err != nil {
        return model.Job{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Job{}, err
    }
    return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a job by id. Missing rows yield ErrNotFound.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (model.Job, error) {
    row := r.db.QueryRowContext(ctx,
        "SELECT "+jobColumns+" FROM jobs WHERE id=? LIMIT 1", id)
    j, err := scanJob(row)
    if err == sql.ErrNoRows {
        return model.Job{}, ErrNotFound
    }
    return j, err
}

// List returns jobs newest first. An empty status returns every job;
// otherwise rows are filtered by status.
func (r *JobRepo) List(ctx context.Context, status string) ([]model.Job, error) {
    q := "SELECT " + jobColumns + " FROM jobs ORDER BY created_at DESC"
    args := []any{}
    if status != "" {
        q = "SELECT " + jobColumns + " FROM jobs WHERE status=? ORDER BY created_at DESC"
        args = append(args, status)
    }
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    jobs := []model.Job{}
    for rows.Next() {
        j, err := scanJob(rows)
        if err != nil {
            return nil, err
        }
        jobs = append(jobs, j)
    }
    return jobs, rows.Err()
}

// Update writes the full mutable column set of the given job and touches
// updated_at. Callers fetch the row first, apply partial changes and hand
// the result here.
func (r *JobRepo) Update(ctx context.Context, j model.Job) (model.Job, error) {
    now := time.Now().UTC()
    res, err := r.db.ExecContext(ctx,
        "UPDATE jobs SET title=?, description=?, location=?, status=?, updated_at=? WHERE id=?",
        j.Title, j.Description, j.Location, j.Status, now, j.ID)
    if err != nil {
        return model.Job{}, err
    }
    if _, err := res.RowsAffected(); err != nil {
        return model.Job{}, err
    }
    return r.GetByID(ctx, j.ID)
}

// ClaimTx flips a job from available to assigned inside tx. It reports
// false when the job was not in the available state at execution time,
// which is what closes the race between two workers grabbing the same job.
func (r *JobRepo) ClaimTx(ctx context.Context, tx *sql.Tx, jobID uint64) (bool, error) {
    res, err := tx.ExecContext(ctx,
        "UPDATE jobs SET status=?, updated_at=? WHERE id=? AND status=?",
        model.JobStatusAssigned, time.Now().UTC(), jobID, model.JobStatusAvailable)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// SetStatusIfTx moves a job from one status to another inside tx. Jobs in
// any other state are left alone; the update is a conditional no-op.
func (r *JobRepo) SetStatusIfTx(ctx context.Context, tx *sql.Tx, jobID uint64, from, to string) error {
    _, err := tx.ExecContext(ctx,
        "UPDATE jobs SET status=?, updated_at=? WHERE id=? AND status=?",
        to, time.Now().UTC(), jobID, from)
    return err
}

// SetStatusTx unconditionally sets a job's status inside tx.
func (r *JobRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, jobID uint64, status string) error {
    _, err := tx.ExecContext(ctx,
        "UPDATE jobs SET status=?, updated_at=? WHERE id=?",
        status, time.Now().UTC(), jobID)
    return err
}

// DeleteTx removes a job and its dependent assignments inside tx. The
// assignments go first so the delete never trips the foreign key. Missing
// jobs yield ErrNotFound.
func (r *JobRepo) DeleteTx(ctx context.Context, tx *sql.Tx, jobID uint64) error {
    if _, err := tx.ExecContext(ctx,
        "DELETE FROM job_assignments WHERE job_id=?", jobID); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, "DELETE FROM jobs WHERE id=?", jobID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}
