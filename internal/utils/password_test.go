package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
    hash, err := HashPassword("supersecret1", bcrypt.MinCost)
    require.NoError(t, err)
    require.NotEmpty(t, hash)
    assert.NotEqual(t, "supersecret1", hash)

    assert.True(t, VerifyPassword(hash, "supersecret1"))
    assert.False(t, VerifyPassword(hash, "wrongpassword"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
    h1, err := HashPassword("supersecret1", bcrypt.MinCost)
    require.NoError(t, err)
    h2, err := HashPassword("supersecret1", bcrypt.MinCost)
    require.NoError(t, err)

    // bcrypt salts per call, so identical inputs hash differently.
    assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_BadHash(t *testing.T) {
    assert.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}
