package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps err to a status code and JSON body. Errors outside the
// business taxonomy are logged and reported as 500 without details.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("path", c.FullPath()).
			Msg("request failed")
		Internal(c, "internal_error", "An unexpected error occurred.")
		return
	}

	message := be.Message
	if message == "" {
		message = be.Code
	}

	c.JSON(StatusFor(be.Kind), HTTPError{
		Code:    be.Code,
		Message: message,
		Fields:  be.Fields,
	})
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvalidReference, KindBusiness:
		return http.StatusBadRequest
	case KindConflict, KindInvalidState, KindReferenced:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
