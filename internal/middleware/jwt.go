package middleware // middleware contains reusable HTTP middleware

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the subject claim in the request context under "user_id".
// The secret must match the one used when issuing tokens. Handlers behind
// this middleware read the caller's identity via c.Get("user_id").
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized,
                    echo.Map{"success": false, "message": "Missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // The key callback pins the signing method to HMAC; tokens
            // signed any other way are rejected outright.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized,
                    echo.Map{"success": false, "message": "Invalid token"})
            }
            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized,
                    echo.Map{"success": false, "message": "Invalid claims"})
            }

            c.Set("user_id", claims["sub"])
            return next(c)
        }
    }
}
