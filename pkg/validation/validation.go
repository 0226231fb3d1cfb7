package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to the labels used on the contact form
var FieldLabels = map[string]string{
	"name":    "Nombre",
	"email":   "Email",
	"phone":   "Telefono",
	"service": "Servicio",
	"message": "Mensaje",
}

// New returns a validator that reports fields by their JSON name
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// MissingFields lists the JSON names of fields that failed the required rule.
// It returns nil when err is not a validation error.
func MissingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var fields []string
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			fields = append(fields, e.Field())
		}
	}
	return fields
}

// Labels converts JSON field names to form labels
func Labels(fields []string) []string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		if label, ok := FieldLabels[f]; ok {
			labels[i] = label
			continue
		}
		labels[i] = f
	}
	return labels
}
