package model

import "time"

// MaxProductPrice is the largest price a product may carry, matching the
// DECIMAL(10,2) column it is stored in.
const MaxProductPrice = 99999999.99

// Product is a per-user inventory item mirroring the `products` table.
// Products are visible only to their owning user.
type Product struct {
    ID        uint64    // products.id
    UserID    uint64    // products.user_id
    Name      string    // products.name
    Price     float64   // products.price (DECIMAL(10,2))
    CreatedAt time.Time // products.created_at
    UpdatedAt time.Time // products.updated_at
}
