package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
)

var validate = validator.New()

// ValidateStruct validates a struct based on its validation tags. The
// returned error lists every failing field in its details.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return pkgerrors.NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	fields := make(map[string]any, len(fieldErrs))
	for _, e := range fieldErrs {
		msg := formatFieldError(e)
		msgs = append(msgs, msg)
		fields[strings.ToLower(e.Field())] = msg
	}
	return pkgerrors.NewValidationError(strings.Join(msgs, "; ")).
		WithDetails(map[string]any{"fields": fields})
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "hexcolor", "len":
		return fmt.Sprintf("%s must be a #rrggbb color", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ColorValidator checks fill and line colors
type ColorValidator struct {
	v *validator.Validate
}

func NewColorValidator() *ColorValidator {
	return &ColorValidator{v: validate}
}

// ValidateColor accepts "#rrggbb" only
func (c *ColorValidator) ValidateColor(color string) error {
	if err := c.v.Var(color, "required,hexcolor,len=7"); err != nil {
		return pkgerrors.NewInvalidArgumentError(fmt.Sprintf("invalid color %q: expected #rrggbb", color))
	}
	return nil
}
