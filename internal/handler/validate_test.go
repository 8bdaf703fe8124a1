package handler

import (
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
    tests := []struct {
        name  string
        email string
        want  string
    }{
        {"valid address", "worker@example.com", ""},
        {"valid with plus tag", "worker+jobs@example.com", ""},
        {"empty", "", "Email is required"},
        {"whitespace only", "   ", "Email is required"},
        {"missing at sign", "worker.example.com", "Invalid email format"},
        {"missing domain", "worker@", "Invalid email format"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, validateEmail(tt.email))
        })
    }
}

func TestValidatePassword(t *testing.T) {
    tests := []struct {
        name     string
        password string
        want     string
    }{
        {"long enough", "supersecret", ""},
        {"exactly eight", "12345678", ""},
        {"empty", "", "Password is required"},
        {"seven characters", "1234567", "Password must be at least 8 characters"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, validatePassword(tt.password))
        })
    }
}

func TestValidateTimezone(t *testing.T) {
    assert.Empty(t, validateTimezone(""))
    assert.Empty(t, validateTimezone("UK"))
    assert.Empty(t, validateTimezone("MEXICO"))
    assert.Empty(t, validateTimezone("INDIA"))
    assert.NotEmpty(t, validateTimezone("uk"))
    assert.NotEmpty(t, validateTimezone("FRANCE"))
}

func TestValidateProductName(t *testing.T) {
    assert.Empty(t, validateProductName("Ladder"))
    assert.Empty(t, validateProductName(strings.Repeat("a", 255)))
    assert.NotEmpty(t, validateProductName(""))
    assert.NotEmpty(t, validateProductName("   "))
    assert.NotEmpty(t, validateProductName(strings.Repeat("a", 256)))
}

func TestValidateProductPrice(t *testing.T) {
    tests := []struct {
        name  string
        price float64
        want  string
    }{
        {"zero is allowed", 0, ""},
        {"normal price", 19.99, ""},
        {"maximum is inclusive", 99999999.99, ""},
        {"negative", -0.01, "Price cannot be negative"},
        {"over maximum", 100000000, "Price is too large"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, validateProductPrice(tt.price))
        })
    }
}

func TestValidateRating(t *testing.T) {
    for r := 1; r <= 5; r++ {
        assert.Empty(t, validateRating(r))
    }
    assert.NotEmpty(t, validateRating(0))
    assert.NotEmpty(t, validateRating(6))
    assert.NotEmpty(t, validateRating(-1))
}

func TestParseScheduledDate(t *testing.T) {
    tests := []struct {
        name  string
        input string
        ok    bool
        want  time.Time
    }{
        {
            name:  "rfc3339",
            input: "2026-09-14T09:30:00Z",
            ok:    true,
            want:  time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC),
        },
        {
            name:  "datetime without zone",
            input: "2026-09-14 09:30:00",
            ok:    true,
            want:  time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC),
        },
        {
            name:  "date only",
            input: "2026-09-14",
            ok:    true,
            want:  time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
        },
        {name: "empty", input: "", ok: false},
        {name: "garbage", input: "next tuesday", ok: false},
        {name: "wrong order", input: "14-09-2026", ok: false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, ok := parseScheduledDate(tt.input)
            require.Equal(t, tt.ok, ok)
            if tt.ok {
                assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
            }
        })
    }
}
