package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/go-playground/validator/v10"
)

const (
	sep = ", "
)

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
	Var(field interface{}, tag string) error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

// NewXValidator reports fields by their mapstructure or json names. m may be nil.
func NewXValidator(m *metrics.Metrics) IXValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	for key, function := range valid {
		_ = v.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: v,
		metrics:   m,
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	err := x.validator.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []Error{{FailedField: "", Tag: "invalid", Value: data}}
	}

	for _, fe := range errs {
		elem := Error{
			FailedField: trimRoot(fe.Namespace()),
			Tag:         fe.Tag(),
			Value:       fe.Value(),
		}
		validationErrors = append(validationErrors, elem)

		if x.metrics != nil {
			x.metrics.RecordValidationError(elem.FailedField, elem.Tag)
		}
	}

	return validationErrors
}

func (x XValidator) Var(field interface{}, tag string) error {
	return x.validator.Var(field, tag)
}

// Message formats each failed field with format and joins the results.
func Message(errs []Error, format string) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, fmt.Sprintf(format, err.FailedField, err.Tag))
	}

	return strings.Join(msgs, sep)
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"mapstructure", "json"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return field.Name
}

func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}

	return namespace
}
