package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var body map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    return body
}

func TestRespondSuccess(t *testing.T) {
    c, rec := newTestContext(t)

    require.NoError(t, respondSuccess(c, "Jobs retrieved successfully", []string{"a", "b"}))

    assert.Equal(t, http.StatusOK, rec.Code)
    body := decodeEnvelope(t, rec)
    assert.Equal(t, true, body["success"])
    assert.Equal(t, "Jobs retrieved successfully", body["message"])
    assert.Equal(t, []any{"a", "b"}, body["data"])
    // errors must be omitted entirely on success responses.
    _, present := body["errors"]
    assert.False(t, present)
}

func TestRespondCreated(t *testing.T) {
    c, rec := newTestContext(t)

    require.NoError(t, respondCreated(c, "Job created successfully", map[string]any{"id": 1}))

    assert.Equal(t, http.StatusCreated, rec.Code)
    body := decodeEnvelope(t, rec)
    assert.Equal(t, true, body["success"])
}

func TestRespondValidation(t *testing.T) {
    c, rec := newTestContext(t)

    errs := map[string]string{"email": "Email is required"}
    require.NoError(t, respondValidation(c, "Validation failed", errs))

    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    body := decodeEnvelope(t, rec)
    assert.Equal(t, false, body["success"])
    assert.Equal(t, "Validation failed", body["message"])
    assert.Nil(t, body["data"])
    assert.Equal(t, map[string]any{"email": "Email is required"}, body["errors"])
}

func TestRespondNotFound(t *testing.T) {
    c, rec := newTestContext(t)

    require.NoError(t, respondNotFound(c, "Job not found"))

    assert.Equal(t, http.StatusNotFound, rec.Code)
    body := decodeEnvelope(t, rec)
    assert.Equal(t, false, body["success"])
    _, present := body["errors"]
    assert.False(t, present)
}

func TestErrorHandler(t *testing.T) {
    tests := []struct {
        name       string
        err        error
        wantStatus int
        wantMsg    string
    }{
        {
            name:       "echo http error keeps its status",
            err:        echo.NewHTTPError(http.StatusNotFound, "Not Found"),
            wantStatus: http.StatusNotFound,
            wantMsg:    "Not Found",
        },
        {
            name:       "plain error becomes a generic 500",
            err:        assert.AnError,
            wantStatus: http.StatusInternalServerError,
            wantMsg:    "Internal server error",
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            c, rec := newTestContext(t)

            ErrorHandler(tt.err, c)

            assert.Equal(t, tt.wantStatus, rec.Code)
            body := decodeEnvelope(t, rec)
            assert.Equal(t, false, body["success"])
            assert.Equal(t, tt.wantMsg, body["message"])
            // The raw error text must never leak to the client.
            assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
        })
    }
}
