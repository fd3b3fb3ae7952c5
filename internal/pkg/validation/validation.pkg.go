package validation

import (
	"delegasi-pay/internal/common/enum"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	val       *validator.Validate
	setupOnce sync.Once
	setupErr  error
)

var validationMessages = map[string]string{
	"required":  "is required",
	"url":       "must be a valid URL",
	"number":    "must be a number",
	"oneof":     "must be one of the allowed values: %s",
	"min":       "must be at least %s characters",
	"max":       "must be at most %s characters",
	"len":       "must have the exact length of %s",
	"alphanum":  "must contain only alphanumeric characters",
	"gt":        "must be greater than %s",
	"gte":       "must be greater than or equal to %s",
	"enum":      "must be one of the allowed enum values: %s",
	"reference": "must not contain spaces or control characters",
}

// Setup builds the shared validator and registers the custom tags on gin's
// binding engine too. Safe to call more than once.
func Setup() error {
	setupOnce.Do(func() {
		setupErr = setup()
	})
	return setupErr
}

func setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("reference", validateReference); err != nil {
		return fmt.Errorf("failed to register reference validation: %w", err)
	}
	return nil
}

// validateReference accepts printable payment references without whitespace.
func validateReference(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func Validate(payload interface{}) error {
	if err := val.Struct(payload); err != nil {
		var errorMessages []string

		validationErrors := parsingErrorValidate(err)
		if validationErrors != "" {
			errorMessages = append(errorMessages, validationErrors)
		}
		message := "Validation failed: " + strings.Join(errorMessages, ", ")
		return errors.New(message)
	}

	return nil
}

// FieldErrors validates payload and returns the first message per field,
// keyed by json name. Nil means valid.
func FieldErrors(payload interface{}, overrides map[string]string) map[string]string {
	err := val.Struct(payload)
	if err == nil {
		return nil
	}

	result := map[string]string{}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		result[""] = err.Error()
		return result
	}

	for _, e := range errs {
		if _, seen := result[e.Field()]; seen {
			continue
		}
		if msg, ok := overrides[e.Field()+"."+e.Tag()]; ok {
			result[e.Field()] = msg
			continue
		}
		result[e.Field()] = fmt.Sprintf("%s %s", e.Field(), formatMessage(e))
	}
	return result
}

func formatMessage(e validator.FieldError) string {
	msg, ok := validationMessages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	switch e.Tag() {
	case "enum":
		return fmt.Sprintf(msg, e.Type())
	default:
		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, e.Param())
		}
	}
	return msg
}

func parsingErrorValidate(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var sb strings.Builder
		for _, e := range errs {
			sb.WriteString(fmt.Sprintf("%s: %s %s", e.Namespace(), e.Field(), formatMessage(e)))
			sb.WriteString(", ")
		}
		return strings.TrimSuffix(sb.String(), ", ")
	}
	return err.Error()
}
