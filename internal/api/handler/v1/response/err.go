package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error envelope every non-2xx response carries.
type Err struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"-"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`

	// internal is logged, never serialized.
	internal error
}

func (e *Err) Error() string {
	if e.internal != nil {
		return e.internal.Error()
	}

	return e.Message
}

func NewErr(statusCode int, message string, err error) *Err {
	return &Err{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		internal:   err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(message string) *Err {
	return NewErr(http.StatusUnauthorized, message, nil)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "invalid email or password", err)
}

func ErrPermissionDenied() *Err {
	return NewErr(http.StatusForbidden, "permission denied", nil)
}

func ErrNotFound(resource string) *Err {
	return NewErr(http.StatusNotFound, resource+" not found", nil)
}

func ErrTooManyRequests() *Err {
	return NewErr(http.StatusTooManyRequests, "too many requests", nil)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr writes the envelope and aborts the chain. Server-side
// failures are logged with the request ID; client errors are not.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", ctx.Writer.Header().Get("X-Request-ID")),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(err.internal),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
