package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// ValidationError maps form field names to the message shown next to them
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	return "invalid form fields: " + strings.Join(fields, ", ")
}

// FormDecoder turns a posted form into a validated struct
type FormDecoder struct {
	decoder  *schema.Decoder
	validate *validator.Validate
}

func NewFormDecoder() *FormDecoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	validate := validator.New()
	// report fields under their form names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("schema")
	})
	// "notblank" rejects empty and whitespace-only values
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &FormDecoder{decoder: decoder, validate: validate}
}

// Decode fills dst from the request body. A ValidationError is returned when
// required fields are missing; any other error means the body was unusable.
func (f *FormDecoder) Decode(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}
	if err := f.decoder.Decode(dst, r.PostForm); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}

	err := f.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := ValidationError{}
	for _, fe := range fieldErrs {
		verr[fe.Field()] = fieldMessage(fe)
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "This field is required."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	}
	return "Invalid value."
}

// formValues echoes non-secret fields back into the re-rendered form
func formValues(r *http.Request, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = r.PostFormValue(field)
	}
	return values
}
