package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance. Field names in validation
// errors use the JSON tag so that the "field" in error envelopes matches
// what the client actually sent.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes the request body into dst and runs struct
// validation. On failure it writes the error envelope and returns false;
// handlers should simply return.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, CodeInvalid, "invalid JSON body")
		return false
	}

	if err := Validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ve := verrs[0]
			code := CodeInvalid
			message := "invalid value for " + ve.Field()
			if ve.Tag() == "required" {
				code = CodeFieldRequired
				message = ve.Field() + " is required"
			}
			RespondWithFieldError(w, r, http.StatusBadRequest, code, message, ve.Field())
			return false
		}
		RespondWithError(w, r, http.StatusBadRequest, CodeInvalid, "invalid request")
		return false
	}

	return true
}
