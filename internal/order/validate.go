package order

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"dermayooth-storefront/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError lists the form fields that were rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", k, e.Fields[k]))
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets callers match validation failures with domain.ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

func validateStruct(s any, extra map[string]string) error {
	fields := map[string]string{}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = msgForTag(fe)
		}
	}
	for k, v := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateDetails checks the customer block. Deliveries need an address,
// quote requests do not.
func validateDetails(d domain.CustomerDetails, requireAddress bool) error {
	extra := map[string]string{}
	if strings.TrimSpace(d.Name) == "" {
		extra["name"] = "is required"
	}
	if requireAddress && strings.TrimSpace(d.Address) == "" {
		extra["address"] = "is required"
	}
	return validateStruct(d, extra)
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}
