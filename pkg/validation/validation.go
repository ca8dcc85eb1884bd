// Package validation valida DTOs con etiquetas validate y produce mensajes en español.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Error agrupa los mensajes de todos los campos inválidos.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return strings.Join(e.Fields, "; ")
}

// Struct valida s según sus etiquetas. Devuelve *Error si algún campo no cumple.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fieldMessage(fe))
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", field, e.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, e.Param())
	case "email":
		return fmt.Sprintf("%s debe ser un e-mail válido", field)
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID", field)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, e.Param())
	case "dive":
		return fmt.Sprintf("%s contiene valores inválidos", field)
	default:
		return fmt.Sprintf("%s es inválido", field)
	}
}
