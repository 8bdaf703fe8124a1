package middleware

// identity.go provides the identity helper shared by the rate limiter and
// the response cache key builders. It reads the user_id stored by JWTAuth;
// unauthenticated requests resolve to "guest".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// callerKey returns a stable string identity for the current request.
func callerKey(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "guest"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
        return "guest"
    case float64:
        return fmt.Sprintf("%.0f", t)
    default:
        return fmt.Sprint(t)
    }
}
