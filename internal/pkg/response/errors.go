package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreinspect/core/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error renders a repository-taxonomy error with the matching status code.
// MultipleResults is a server-side integrity defect, so it maps to 500.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c)
	case errors.Is(err, repository.ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		Send(c, http.StatusServiceUnavailable,
			New(http.StatusServiceUnavailable, "Store unavailable", nil, nil, nil))
	default:
		InternalError(c, err)
	}
}

// ValidationError renders a 422 with one details entry per failing field and a
// combined human-readable message. Non-validation bind errors render as 400.
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, err.Error())
		return
	}

	details := make([]FieldError, 0, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg := fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
		details = append(details, FieldError{field: msg})
		messages = append(messages, msg)
	}
	UnprocessableEntity(c, strings.Join(messages, " "), details)
}
