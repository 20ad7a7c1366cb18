package bookshelf

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("please fill in all fields")

// ValidationError lists the offending fields of a rejected form, keyed by
// their JSON names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseForm trims the text fields, parses the year and validates the result.
// Any failure is reported as a single *ValidationError.
func ParseForm(f Form) (NewBook, error) {
	nb := NewBook{
		Title:      strings.TrimSpace(f.Title),
		Author:     strings.TrimSpace(f.Author),
		IsComplete: f.IsComplete,
	}

	fields := make(map[string]string)
	year, err := strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil {
		fields["year"] = "must be a whole number"
	}
	nb.Year = year

	if err := nb.check(); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return NewBook{}, err
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return NewBook{}, &ValidationError{Fields: fields}
	}
	return nb, nil
}

func (nb NewBook) check() error {
	err := validate.Struct(nb)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = friendlyMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}
