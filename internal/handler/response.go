package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// envelope is the uniform JSON wrapper every endpoint responds with.
// Errors carries per-field reasons and is omitted when empty.
type envelope struct {
    Success bool              `json:"success"`
    Message string            `json:"message"`
    Data    any               `json:"data"`
    Errors  map[string]string `json:"errors,omitempty"`
}

func respondSuccess(c echo.Context, message string, data any) error {
    return c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data any) error {
    return c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, status int, message string, errors map[string]string) error {
    return c.JSON(status, envelope{Success: false, Message: message, Errors: errors})
}

func respondValidation(c echo.Context, message string, errors map[string]string) error {
    return respondError(c, http.StatusUnprocessableEntity, message, errors)
}

func respondNotFound(c echo.Context, message string) error {
    return respondError(c, http.StatusNotFound, message, nil)
}

// ErrorHandler is installed as the Echo HTTPErrorHandler so that framework
// level failures (unknown routes, panics recovered by middleware, handler
// errors that slipped through) still render the envelope. Internal errors
// are reported with a generic message only.
func ErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    status := http.StatusInternalServerError
    message := "Internal server error"
    if he, ok := err.(*echo.HTTPError); ok {
        status = he.Code
        if s, ok := he.Message.(string); ok {
            message = s
        }
    }
    _ = respondError(c, status, message, nil)
}
