package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "event-rental/pkg/errors"
)

// CustomValidator wraps validator for use as echo's Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator. Field errors come back as an
// *apperrors.ValidationError keyed by json field name.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return translate("", err)
	}
	return nil
}

// Var validates a single value against a tag such as "required,max=50".
// field names the offending key in the returned error.
func (cv *CustomValidator) Var(field string, value interface{}, tag string) error {
	if tag == "" {
		return nil
	}
	if err := cv.validator.Var(value, tag); err != nil {
		return translate(field, err)
	}
	return nil
}

// New builds the validator with null-type support and the custom rules.
func New() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerNullTypes(v)

	// The server must not start with a broken rule set.
	if err := registerRules(v); err != nil {
		panic("failed to register validation rules: " + err.Error())
	}

	return &CustomValidator{validator: v}
}

func translate(field string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		out.Add(name, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "email", "custom_email":
		return "enter a valid email address"
	case "username":
		return "enter a valid username: letters, digits and @/./+/-/_ only"
	case "role":
		return "not a valid role"
	case "numeric":
		return "digits only"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
