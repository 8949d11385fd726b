package dto

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida del validador. Las reglas custom se registran
// una sola vez; la instancia es segura para uso concurrente.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// userpassword: mínimo 6 caracteres, al menos una letra y un dígito.
	_ = v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})
	return v
}

func validPassword(s string) bool {
	if len(s) < 6 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Validate valida un DTO contra sus tags. Devuelve nil si es válido.
func Validate(in interface{}) error {
	return validate.Struct(in)
}

// FieldErrors traduce un error del validador al detalle por campo que viaja en
// ErrorResponse. Para errores que no son de validación devuelve nil.
func FieldErrors(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "userpassword":
		return "debe tener al menos 6 caracteres e incluir una letra y un dígito"
	case "min":
		return "debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return "debe tener como máximo " + fe.Param() + " caracteres"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
