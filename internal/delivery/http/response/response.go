package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the JSON body of every API reply. Error is a string, or a list of
// messages for schema violations.
type Response struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Error   any    `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a successful response.
func Success(c echo.Context, statusCode int, msg string, data any) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Msg:     msg,
		Data:    data,
	})
}

// Error writes a failure response carrying a single message.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// Errors writes a failure response carrying one message per violated rule.
func Errors(c echo.Context, statusCode int, messages []string) error {
	return c.JSON(statusCode, Response{
		Success: false,
		Error:   messages,
	})
}
