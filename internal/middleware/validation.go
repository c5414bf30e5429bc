package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "tunnelcli/internal/errors"
)

// QueryValidator decodes query parameters into tagged structs and validates
// them with their `validate` tags
type QueryValidator struct {
	validator *validator.Validate
}

// NewQueryValidator creates a validator that reports fields by their
// `query` tag names
func NewQueryValidator() *QueryValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &QueryValidator{validator: v}
}

// Decode fills the string and float64 fields of the struct pointed to by
// dst from r's query string, then validates it. Errors are APIErrors with
// per-field details.
func (q *QueryValidator) Decode(r *http.Request, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode query: want pointer to struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()
	query := r.URL.Query()

	var fieldErrs []apperrors.ValidationError
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := strings.SplitN(sf.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}

		field := rv.Field(i)
		if field.Kind() == reflect.Ptr {
			ptr := reflect.New(field.Type().Elem())
			field.Set(ptr)
			field = ptr.Elem()
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Float64:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fieldErrs = append(fieldErrs, apperrors.ValidationError{
					Field:   name,
					Message: fmt.Sprintf("%s must be a number", name),
				})
				continue
			}
			field.SetFloat(f)
		default:
			return fmt.Errorf("decode query: unsupported field kind %s for %s", field.Kind(), sf.Name)
		}
	}
	if len(fieldErrs) > 0 {
		return apperrors.NewValidationErrors(fieldErrs)
	}
	return q.Validate(dst)
}

// Validate checks struct tags and converts failures to an APIError
func (q *QueryValidator) Validate(v interface{}) error {
	err := q.validator.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.InvalidRequestWithError(err)
	}

	out := make([]apperrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apperrors.NewValidationErrors(out)
}

func formatValidationError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
