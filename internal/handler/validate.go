package handler

// validate.go holds the field validators shared by the auth, product and
// assignment handlers. Each returns a reason string keyed by field name so
// callers can aggregate every violation into a single response instead of
// stopping at the first.

import (
    "net/mail"
    "strings"
    "time"

    "github.com/jobdesk/marketplace-api/internal/model"
)

// validateEmail returns a reason when the address is blank or malformed.
func validateEmail(email string) string {
    email = strings.TrimSpace(email)
    if email == "" {
        return "Email is required"
    }
    if _, err := mail.ParseAddress(email); err != nil {
        return "Invalid email format"
    }
    return ""
}

// validatePassword enforces the minimum length of 8 characters.
func validatePassword(password string) string {
    if password == "" {
        return "Password is required"
    }
    if len(password) < 8 {
        return "Password must be at least 8 characters"
    }
    return ""
}

// validateTimezone checks membership in the supported region set. An empty
// value is fine; registration falls back to the default.
func validateTimezone(tz string) string {
    if tz == "" {
        return ""
    }
    if !model.ValidTimezone(tz) {
        return "Timezone must be one of: UK, MEXICO, INDIA"
    }
    return ""
}

// validateProductName rejects blank names and names over 255 characters.
func validateProductName(name string) string {
    if strings.TrimSpace(name) == "" {
        return "Product name cannot be empty"
    }
    if len(name) > 255 {
        return "Product name cannot exceed 255 characters"
    }
    return ""
}

// validateProductPrice bounds the price to the DECIMAL(10,2) column. The
// upper bound is inclusive: exactly 99999999.99 is accepted.
func validateProductPrice(price float64) string {
    if price < 0 {
        return "Price cannot be negative"
    }
    if price > model.MaxProductPrice {
        return "Price is too large"
    }
    return ""
}

// validateRating bounds a completion rating to 1..5.
func validateRating(rating int) string {
    if rating < 1 || rating > 5 {
        return "Rating must be between 1 and 5"
    }
    return ""
}

// scheduledDateLayouts are the accepted wire formats for scheduled dates,
// tried in order. All parse in UTC.
var scheduledDateLayouts = []string{
    time.RFC3339,
    "2006-01-02 15:04:05",
    "2006-01-02",
}

// parseScheduledDate parses a scheduled date string in UTC.
func parseScheduledDate(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, false
    }
    for _, layout := range scheduledDateLayouts {
        if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
            return t.UTC(), true
        }
    }
    return time.Time{}, false
}
