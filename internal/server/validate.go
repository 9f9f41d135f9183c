package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxJSONBody = 10 << 20

// decodeValid decodes a JSON body into req and runs struct validation.
// It writes the error response itself and reports whether the handler
// should continue.
func decodeValid(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		var details []string
		var fieldErrs validator.ValidationErrors
		if errors, ok := err.(validator.ValidationErrors); ok {
			fieldErrs = errors
		}
		for _, fe := range fieldErrs {
			details = append(details, fieldErrorMessage(fe))
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": details,
		})
		return false
	}
	return true
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		return fmt.Sprintf("%q must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%q must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%q must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
