package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("rut", validRUT)
	return &echoValidator{v: v}
}

// validRUT checks the shape of a Chilean RUT: digits plus a final
// verifier digit or K, with optional dots and dash (12.345.678-5).
func validRUT(fl validator.FieldLevel) bool {
	raw := strings.ToUpper(fl.Field().String())
	clean := strings.NewReplacer(".", "", "-", "").Replace(raw)
	if len(clean) < 2 {
		return false
	}
	body, dv := clean[:len(clean)-1], clean[len(clean)-1]
	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}
	return (dv >= '0' && dv <= '9') || dv == 'K'
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "rut":
		return field + " must be a valid RUT"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
