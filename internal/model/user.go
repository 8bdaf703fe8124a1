package model

import "time"

// Timezone values accepted for a user profile. The marketplace operates
// across three regions and scheduling is presented in the worker's zone.
const (
    TimezoneUK     = "UK"
    TimezoneMexico = "MEXICO"
    TimezoneIndia  = "INDIA"
)

// ValidTimezone reports whether tz is one of the supported regions.
func ValidTimezone(tz string) bool {
    switch tz {
    case TimezoneUK, TimezoneMexico, TimezoneIndia:
        return true
    }
    return false
}

// User represents an application user as stored in the `users` table.
// These structs are used by the repository layer; handlers define their
// own response types with JSON tags.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password, never serialized.
//  Name         – display name.
//  Timezone     – one of the Timezone* constants.
//  CreatedAt    – timestamp of creation (UTC).
//  UpdatedAt    – timestamp of last update (UTC).
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Name         string    // users.name
    Timezone     string    // users.timezone
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in the `refresh_tokens` table. Each token
// belongs to a user and carries expiry and revocation metadata. The plain
// token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the raw token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null while active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
