package traversals

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// nanosPerSecond converts the nanos remainder of a Duration into seconds.
const nanosPerSecond = 1_000_000_000

// Document is a benchmark results file. Only the fields below are read; any
// other fields in the file are ignored.
//
// Required fields are pointers or slices so that a missing field can be told
// apart from a zero value.
type Document struct {
	Traversals []Traversal `json:"traversals" validate:"required,dive"`
}

// Traversal is one benchmark run performed with a fixed number of workers.
type Traversal struct {
	Workers      *int       `json:"workers" validate:"required,min=0"`
	RequestTimes []Duration `json:"request_times" validate:"required,dive"`
}

// Duration is a single request's elapsed time split into whole seconds and a
// nanosecond remainder.
type Duration struct {
	Secs  *int64 `json:"secs" validate:"required"`
	Nanos *int64 `json:"nanos" validate:"required"`
}

// Seconds returns secs + nanos/1e9. No bounds checks are made on either field.
func (d Duration) Seconds() float64 {
	return float64(*d.Secs) + float64(*d.Nanos)/nanosPerSecond
}

// SchemaError is returned when a document is not valid JSON or does not match
// the expected shape.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field paths using JSON names so errors point at the input file.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ReadFile opens the file at path, decodes it and closes it again before
// returning.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a single JSON document from r and validates its shape. Any
// failure is returned as a *SchemaError.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &SchemaError{Reason: "unexpected data after the top-level JSON value", Err: err}
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, validationError(err)
	}
	return &doc, nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return &SchemaError{
			Reason: fmt.Sprintf("malformed JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error()),
			Err:    err,
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "document"
		}
		return &SchemaError{
			Reason: fmt.Sprintf("%s: expected %s; got JSON %s", field, typeErr.Type, typeErr.Value),
			Err:    err,
		}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &SchemaError{Reason: "unexpected end of JSON input", Err: err}
	default:
		return &SchemaError{Reason: err.Error(), Err: err}
	}
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &SchemaError{Reason: err.Error(), Err: err}
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		// Namespaces are prefixed with the Go type name of the root struct.
		field := strings.TrimPrefix(fieldErr.Namespace(), "Document.")
		switch fieldErr.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", field))
		case "min":
			problems = append(problems, fmt.Sprintf("%s must be at least %s; got %v", field, fieldErr.Param(), fieldErr.Value()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed on the '%s' check", field, fieldErr.Tag()))
		}
	}
	return &SchemaError{Reason: strings.Join(problems, "; "), Err: err}
}
