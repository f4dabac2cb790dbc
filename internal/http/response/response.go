package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	// Raw carries the unparsed model reply when an evaluation could not be read.
	Raw string `json:"raw,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ErrorCodeKey holds the code of the error envelope written for the request, for metrics.
const ErrorCodeKey = "response.error_code"

// ErrorCode returns the code set by RespondError, RespondAPIError or AbortUnauthorized, if any.
func ErrorCode(c *gin.Context) string {
	return c.GetString(ErrorCodeKey)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.Set(ErrorCodeKey, code)
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError writes e, attaching raw when it is non-empty.
func RespondAPIError(c *gin.Context, e *apierr.Error, raw string) {
	if e == nil {
		e = apierr.New(http.StatusInternalServerError, apierr.CodeInternal, nil)
	}
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	c.Set(ErrorCodeKey, e.Code)
	c.JSON(e.Status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    e.Code,
			Raw:     raw,
		},
	})
}

func AbortUnauthorized(c *gin.Context, msg string) {
	c.Set(ErrorCodeKey, apierr.CodeUnauthorized)
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorEnvelope{
		Error: APIError{Message: msg, Code: apierr.CodeUnauthorized},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
