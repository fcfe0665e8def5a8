package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"taskmanager/internal/apperr"
)

var statusByCode = map[apperr.Code]int{
	apperr.CodeInvalid:      http.StatusBadRequest,
	apperr.CodeConflict:     http.StatusConflict,
	apperr.CodeUnauthorized: http.StatusUnauthorized,
	apperr.CodeForbidden:    http.StatusForbidden,
	apperr.CodeNotFound:     http.StatusNotFound,
	apperr.CodeInternal:     http.StatusInternalServerError,
}

// writeAppError renders an application error as JSON. Validation errors
// carry their per-field detail; everything else is just the message.
func writeAppError(c *gin.Context, err *apperr.Error) {
	status, ok := statusByCode[err.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	body := gin.H{"error": err.Message}
	if len(err.Fields) > 0 {
		body["details"] = err.Fields
	}
	c.JSON(status, body)
}

// bindingFieldErrors flattens a gin binding failure into field -> reasons,
// using lowerCamel field names matching the JSON payload.
func bindingFieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		fields[name] = append(fields[name], bindingReason(fe))
	}
	return fields
}

func bindingReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
