package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf keys, the names used in YAML files
// and (upper-cased, APP_ prefixed) in the environment.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(koanfKey)

	return v
}

func koanfKey(fld reflect.StructField) string {
	name := fld.Tag.Get("koanf")
	if name == "" || name == "-" {
		return strings.ToLower(fld.Name)
	}

	return name
}

// hints explain keys whose rule alone does not say what to set.
var hints = map[string]string{
	"library.seed_file":        "path of the collection document to import at startup and rewrite on shutdown",
	"library.max_import_bytes": "largest interchange document accepted, in bytes",
	"server.max_request_size":  "largest request body accepted, in bytes",
	"telemetry.endpoint":       "OTLP collector address, e.g. http://localhost:4317",
	"log.file.path":            "file the rotating log is written to",
}

// Validate checks the configuration. The CLI refuses to start on any error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := fieldKey(fe.Namespace())

	var msg string

	switch fe.Tag() {
	case "required":
		msg = key + " is required"
	case "required_if":
		msg = fmt.Sprintf("%s is required when %s", key, condition(fe))
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		msg = fmt.Sprintf("%s must be a valid URL, got %q", key, fe.Value())
	default:
		msg = fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
	}

	if hint, ok := hints[key]; ok {
		msg += " (" + hint + ")"
	}

	return msg
}

// fieldKey turns "Config.library.seed_file" into "library.seed_file".
func fieldKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return key
}

// condition renders a required_if parameter such as "ExportOnShutdown true"
// as "library.export_on_shutdown is true".
func condition(fe validator.FieldError) string {
	field, value, _ := strings.Cut(fe.Param(), " ")

	key := fieldKey(fe.Namespace())
	if i := strings.LastIndex(key, "."); i >= 0 {
		key = key[:i+1]
	} else {
		key = ""
	}

	if sibling, ok := siblingField(fe.StructNamespace(), field); ok {
		field = koanfKey(sibling)
	}

	return fmt.Sprintf("%s%s is %s", key, field, value)
}

// siblingField finds the struct field name next to the field at structNS,
// a Go-name path such as "Config.Library.SeedFile".
func siblingField(structNS, name string) (reflect.StructField, bool) {
	parts := strings.Split(structNS, ".")
	if len(parts) < 2 {
		return reflect.StructField{}, false
	}

	t := reflect.TypeFor[Config]()

	for _, p := range parts[1 : len(parts)-1] {
		f, ok := t.FieldByName(p)
		if !ok {
			return reflect.StructField{}, false
		}

		t = f.Type
	}

	return t.FieldByName(name)
}
