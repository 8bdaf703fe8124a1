package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/jobdesk/marketplace-api/internal/model"
)

// ProductRepo provides per-owner CRUD for products. Ownership is folded
// into every WHERE clause, so a row owned by someone else is
// indistinguishable from a missing one.
type ProductRepo struct {
    db *sql.DB
}

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = "id, user_id, name, price, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
    var p model.Product
    err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
    return p, err
}

// Create inserts a product for the given owner and returns the stored row.
func (r *ProductRepo) Create(ctx context.Context, ownerID uint64, name string, price float64) (model.Product, error) {
    now := time.Now().UTC()
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO products (user_id, name, price, created_at, updated_at) VALUES (?,?,?,?,?)",
        ownerID, name, price, now, now)
    if err != nil {
        return model.Product{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Product{}, err
    }
    return r.GetForOwner(ctx, uint64(id), ownerID)
}

// GetForOwner fetches a product owned by ownerID. Rows missing or owned by
// another user both yield ErrNotFound.
func (r *ProductRepo) GetForOwner(ctx context.Context, id, ownerID uint64) (model.Product, error) {
    row := r.db.QueryRowContext(ctx,
        "SELECT "+productColumns+" FROM products WHERE id=? AND user_id=? LIMIT 1", id, ownerID)
    p, err := scanProduct(row)
    if err == sql.ErrNoRows {
        return model.Product{}, ErrNotFound
    }
    return p, err
}

// ListByOwner returns a user's products, newest id first.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Product, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+productColumns+" FROM products WHERE user_id=? ORDER BY id DESC", ownerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []model.Product{}
    for rows.Next() {
        p, err := scanProduct(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// Update writes name and price of an owned product and touches updated_at.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) (model.Product, error) {
    _, err := r.db.ExecContext(ctx,
        "UPDATE products SET name=?, price=?, updated_at=? WHERE id=? AND user_id=?",
        p.Name, p.Price, time.Now().UTC(), p.ID, p.UserID)
    if err != nil {
        return model.Product{}, err
    }
    return r.GetForOwner(ctx, p.ID, p.UserID)
}

// Delete removes an owned product. Missing and foreign rows both yield
// ErrNotFound.
func (r *ProductRepo) Delete(ctx context.Context, id, ownerID uint64) error {
    res, err := r.db.ExecContext(ctx,
        "DELETE FROM products WHERE id=? AND user_id=?", id, ownerID)
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
