package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate parses the JSON body into v and runs struct validation.
// On failure it writes the 400 response itself and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(r, v); err != nil {
		writeBadRequest(w, "malformed request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeBadRequest(w, validationDescription(err))
		return false
	}
	return true
}

func validationDescription(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "invalid request body"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "missing required field: " + fe.Field()
	case "email":
		return "invalid email address"
	case "min", "max":
		return "field out of bounds: " + fe.Field()
	default:
		return "invalid field: " + fe.Field()
	}
}
