package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom tags used by the request DTOs.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("notblank", IsNotBlank)
}

// RegisterBindingValidations installs the custom tags on gin's binding engine.
func RegisterBindingValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("utils: gin binding engine is not go-playground/validator")
	}
	return RegisterValidations(v)
}

// IsNotBlank rejects strings made only of whitespace.
func IsNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
