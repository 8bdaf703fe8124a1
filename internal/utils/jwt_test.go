package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
    const secret = "test-secret"

    tok, err := NewAccessToken(secret, 42, 15)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Token)

    // The expiry should land roughly 15 minutes out.
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

    parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, parsed.Valid)

    claims, ok := parsed.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, float64(tok.Exp.Unix()), claims["exp"])
    assert.NotNil(t, claims["iat"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
    tok, err := NewAccessToken("right-secret", 1, 15)
    require.NoError(t, err)

    _, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
    tok, err := NewRefreshToken(30)
    require.NoError(t, err)

    // 64 random bytes hex-encoded is a 128 character string.
    assert.Len(t, tok.Raw, 128)
    assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), tok.Exp, 5*time.Second)

    other, err := NewRefreshToken(30)
    require.NoError(t, err)
    assert.NotEqual(t, tok.Raw, other.Raw)
}

func TestHashRefreshRaw(t *testing.T) {
    h1 := HashRefreshRaw("some-token")
    h2 := HashRefreshRaw("some-token")
    h3 := HashRefreshRaw("other-token")

    // SHA-256 hex digest is 64 characters, stable for equal input.
    assert.Len(t, h1, 64)
    assert.Equal(t, h1, h2)
    assert.NotEqual(t, h1, h3)
    assert.NotEqual(t, "some-token", h1)
}
