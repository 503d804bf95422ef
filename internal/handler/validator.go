package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/projectmanager/internal/domain"
)

// fieldMessages maps "<json field>.<tag>" to the message returned to clients.
var fieldMessages = map[string]string{
	"name.required": domain.MsgProjectNameTooShort,
	"name.min":      domain.MsgProjectNameTooShort,
}

// AppValidator wraps go-playground/validator for echo.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator that reports fields by their
// JSON names.
func NewAppValidator() *AppValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &AppValidator{validator: v}
}

// Validate validates a struct using go-playground/validator tags.
func (v *AppValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if ok && len(validationErrors) > 0 {
			fe := validationErrors[0]
			msg, known := fieldMessages[fe.Field()+"."+fe.Tag()]
			if !known {
				msg = fmt.Sprintf("failed on '%s' validation", fe.Tag())
			}
			return &domain.ValidationError{
				Field:   fe.Field(),
				Message: msg,
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
