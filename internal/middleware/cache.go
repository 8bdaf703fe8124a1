package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/jobdesk/marketplace-api/internal/config"
)

// bodyRecorder duplicates the response body into a buffer while it streams
// to the client, up to a size limit. Oversized responses are simply not
// cached.
type bodyRecorder struct {
    http.ResponseWriter
    status  int
    buf     bytes.Buffer
    size    int64
    limit   int64
    tooBig  bool
}

func (br *bodyRecorder) WriteHeader(code int) {
    br.status = code
    br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
    br.size += int64(len(b))
    if br.limit > 0 && br.size > br.limit {
        br.tooBig = true
    } else {
        br.buf.Write(b)
    }
    return br.ResponseWriter.Write(b)
}

// NewRedisCache caches successful JSON responses of the configured
// methods. Entries are keyed by route, query string and caller identity,
// so one user's listing is never served to another. Invalidation is by
// TTL only; the TTL is kept short for that reason.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
                c.Response().Header().Set("X-Cache", "HIT")
                c.Response().WriteHeader(http.StatusOK)
                _, werr := c.Response().Write(body)
                return werr
            }

            rec := &bodyRecorder{
                ResponseWriter: c.Response().Writer,
                status:         http.StatusOK,
                limit:          int64(cfg.MaxBodyBytes),
            }
            c.Response().Writer = rec

            if err := next(c); err != nil {
                return err
            }
            // Only plain 200s are worth keeping.
            if rec.status == http.StatusOK && !rec.tooBig && rec.buf.Len() > 0 {
                _ = rdb.Set(ctx, key, rec.buf.Bytes(), ttl).Err()
            }
            return nil
        }
    }
}

// cacheKey hashes route, raw query and caller identity under the prefix.
func cacheKey(prefix string, c echo.Context) string {
    tail := fmt.Sprintf("%s|%s|%s", c.Path(), c.Request().URL.RawQuery, callerKey(c))
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}
