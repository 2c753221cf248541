// AngelaMos | 2026
// validate.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their JSON
// names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// DecodeJSON reads a request body into dst. Malformed bodies are a 400,
// type mismatches on known fields are a 422.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return NewAppError(ErrInvalidInput, "request body is required", http.StatusBadRequest, "BAD_REQUEST")
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return SchemaError(fmt.Sprintf("%s has an invalid type", typeErr.Field))
	case errors.Is(err, io.EOF):
		return NewAppError(ErrInvalidInput, "request body is required", http.StatusBadRequest, "BAD_REQUEST")
	default:
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return NewAppError(ErrInvalidInput, "invalid request body", http.StatusBadRequest, "BAD_REQUEST")
		}
		// custom UnmarshalJSON failures (dates, times) land here
		return SchemaError(err.Error())
	}
}

// ValidateStruct runs struct tag validation and converts failures into
// a SchemaError.
func ValidateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return SchemaError(FormatValidationError(err))
	}
	return nil
}
