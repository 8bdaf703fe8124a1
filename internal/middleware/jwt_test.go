package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/jobdesk/marketplace-api/internal/utils"
)

const testSecret = "unit-test-secret"

// runJWT sends a request with the given Authorization header through the
// JWTAuth middleware and a probe handler that records the user_id value.
func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, any) {
    t.Helper()

    e := echo.New()
    var captured any
    h := JWTAuth(testSecret)(func(c echo.Context) error {
        captured = c.Get("user_id")
        return c.NoContent(http.StatusOK)
    })

    req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    require.NoError(t, h(e.NewContext(req, rec)))
    return rec, captured
}

func TestJWTAuth_ValidToken(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 7, 15)
    require.NoError(t, err)

    rec, uid := runJWT(t, "Bearer "+tok.Token)

    assert.Equal(t, http.StatusOK, rec.Code)
    // JSON numbers come back as float64 through MapClaims.
    assert.Equal(t, float64(7), uid)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
    rec, uid := runJWT(t, "")

    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Nil(t, uid)
    assert.Contains(t, rec.Body.String(), "Missing bearer token")
}

func TestJWTAuth_NotBearer(t *testing.T) {
    rec, _ := runJWT(t, "Basic dXNlcjpwYXNz")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_MalformedToken(t *testing.T) {
    rec, _ := runJWT(t, "Bearer not.a.jwt")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestJWTAuth_WrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("some-other-secret", 7, 15)
    require.NoError(t, err)

    rec, _ := runJWT(t, "Bearer "+tok.Token)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
    // Sign an already expired token directly; NewAccessToken only mints
    // future expiries.
    claims := jwt.MapClaims{
        "sub": 7,
        "exp": time.Now().UTC().Add(-time.Minute).Unix(),
        "iat": time.Now().UTC().Add(-time.Hour).Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
    require.NoError(t, err)

    rec, _ := runJWT(t, "Bearer "+signed)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsNonHMAC(t *testing.T) {
    // alg=none style tokens must never pass the HMAC pinning.
    unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
        "sub": 7,
        "exp": time.Now().UTC().Add(time.Hour).Unix(),
    }).SignedString(jwt.UnsafeAllowNoneSignatureType)
    require.NoError(t, err)

    rec, _ := runJWT(t, "Bearer "+unsigned)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
