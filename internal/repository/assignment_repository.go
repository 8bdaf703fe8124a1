package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/jobdesk/marketplace-api/internal/model"
)

// AssignmentRepo provides CRUD operations for job assignments. Writes that
// must move the parent job's status in the same breath are exposed as
// ...Tx variants; the handler owns the transaction.
type AssignmentRepo struct {
    db *sql.DB
}

// NewAssignmentRepo returns a new AssignmentRepo bound to the given database.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// DB exposes the underlying handle for transactions spanning assignments
// and jobs.
func (r *AssignmentRepo) DB() *sql.DB { return r.db }

// AssignmentDetail is an assignment joined with its worker and job, shaped
// for API responses. ListByUser and GetDetail return it so handlers never
// issue follow-up lookups per row.
type AssignmentDetail struct {
    ID            uint64     `json:"id"`
    ScheduledDate time.Time  `json:"scheduled_date"`
    CompletedAt   *time.Time `json:"completed_at"`
    Assessment    *string    `json:"assessment"`
    Rating        *int       `json:"rating"`
    Status        string     `json:"status"`
    CreatedAt     time.Time  `json:"created_at"`
    UpdatedAt     time.Time  `json:"updated_at"`
    User          struct {
        ID    uint64 `json:"id"`
        Name  string `json:"name"`
        Email string `json:"email"`
    } `json:"user"`
    Job struct {
        ID       uint64 `json:"id"`
        Title    string `json:"title"`
        Location string `json:"location"`
        Status   string `json:"status"`
    } `json:"job"`
}

const assignmentColumns = "id, user_id, job_id, scheduled_date, completed_at, assessment, rating, status, created_at, updated_at"

func scanAssignment(row interface{ Scan(...any) error }) (model.JobAssignment, error) {
    var (
        a          model.JobAssignment
        completed  sql.NullTime
        assessment sql.NullString
        rating     sql.NullInt64
    )
    err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.ScheduledDate,
        &completed, &assessment, &rating, &a.Status, &a.CreatedAt, &a.UpdatedAt)
    if err != nil {
        return model.JobAssignment{}, err
    }
    if completed.Valid {
        t := completed.Time
        a.CompletedAt = &t
    }
    if assessment.Valid {
        s := assessment.String
        a.Assessment = &s
    }
    if rating.Valid {
        n := int(rating.Int64)
        a.Rating = &n
    }
    return a, nil
}

// CreateTx inserts a scheduled assignment inside tx and returns its ID.
func (r *AssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, jobID uint64, scheduledDate time.Time) (uint64, error) {
    now := time.Now().UTC()
    res, err := tx.ExecContext(ctx,
        "INSERT INTO job_assignments (user_id, job_id, scheduled_date, status, created_at, updated_at) VALUES (?,?,?,?,?,?)",
        userID, jobID, scheduledDate, model.AssignmentStatusScheduled, now, now)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByID fetches a bare assignment row. Missing rows yield ErrNotFound.
func (r *AssignmentRepo) GetByID(ctx context.Context, id uint64) (model.JobAssignment, error) {
    row := r.db.QueryRowContext(ctx,
        "SELECT "+assignmentColumns+" FROM job_assignments WHERE id=? LIMIT 1", id)
    a, err := scanAssignment(row)
    if err == sql.ErrNoRows {
        return model.JobAssignment{}, ErrNotFound
    }
    return a, err
}

const assignmentDetailQuery = `
SELECT a.id, a.scheduled_date, a.completed_at, a.assessment, a.rating, a.status,
       a.created_at, a.updated_at,
       u.id, u.name, u.email,
       j.id, j.title, j.location, j.status
FROM job_assignments a
JOIN users u ON u.id = a.user_id
JOIN jobs  j ON j.id = a.job_id`

func scanAssignmentDetail(row interface{ Scan(...any) error }) (AssignmentDetail, error) {
    var (
        d          AssignmentDetail
        completed  sql.NullTime
        assessment sql.NullString
        rating     sql.NullInt64
    )
    err := row.Scan(&d.ID, &d.ScheduledDate, &completed, &assessment, &rating, &d.Status,
        &d.CreatedAt, &d.UpdatedAt,
        &d.User.ID, &d.User.Name, &d.User.Email,
        &d.Job.ID, &d.Job.Title, &d.Job.Location, &d.Job.Status)
    if err != nil {
        return AssignmentDetail{}, err
    }
    if completed.Valid {
        t := completed.Time
        d.CompletedAt = &t
    }
    if assessment.Valid {
        s := assessment.String
        d.Assessment = &s
    }
    if rating.Valid {
        n := int(rating.Int64)
        d.Rating = &n
    }
    return d, nil
}

// GetDetail fetches a joined assignment row for API responses.
func (r *AssignmentRepo) GetDetail(ctx context.Context, id uint64) (AssignmentDetail, error) {
    row := r.db.QueryRowContext(ctx, assignmentDetailQuery+" WHERE a.id=? LIMIT 1", id)
    d, err := scanAssignmentDetail(row)
    if err == sql.ErrNoRows {
        return AssignmentDetail{}, ErrNotFound
    }
    return d, err
}

// ListByUser returns a user's assignments ordered by scheduled date,
// soonest first. An empty status returns all of them.
func (r *AssignmentRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]AssignmentDetail, error) {
    q := assignmentDetailQuery + " WHERE a.user_id=?"
    args := []any{userID}
    if status != "" {
        q += " AND a.status=?"
        args = append(args, status)
    }
    q += " ORDER BY a.scheduled_date ASC"

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []AssignmentDetail{}
    for rows.Next() {
        d, err := scanAssignmentDetail(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// CompleteTx writes the completion fields of an assignment inside tx. The
// caller computes them via model.JobAssignment.MarkCompleted.
func (r *AssignmentRepo) CompleteTx(ctx context.Context, tx *sql.Tx, a model.JobAssignment) error {
    _, err := tx.ExecContext(ctx,
        "UPDATE job_assignments SET status=?, completed_at=?, assessment=?, rating=?, updated_at=? WHERE id=?",
        a.Status, a.CompletedAt, a.Assessment, a.Rating, a.UpdatedAt, a.ID)
    return err
}

// DeleteTx removes an assignment row inside tx.
func (r *AssignmentRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    res, err := tx.ExecContext(ctx, "DELETE FROM job_assignments WHERE id=?", id)
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
