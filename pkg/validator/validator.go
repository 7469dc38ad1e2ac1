package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator valida structs de entrada en el borde HTTP.
type Validator interface {
	Validate(s any) error
}

// FieldError detalle por campo de una validación fallida.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DefaultValidator implementación sobre go-playground/validator.
type DefaultValidator struct {
	v *validator.Validate
}

// New crea el validador con las reglas propias registradas.
// decimal.Decimal se valida como float64, así funcionan gte/lte sobre precios.
func New() (*DefaultValidator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	if err := v.RegisterValidation("date", validateDate); err != nil {
		return nil, fmt.Errorf("register date validator: %w", err)
	}
	return &DefaultValidator{v: v}, nil
}

// MustNew como New pero entra en pánico si el registro falla (solo al arrancar).
func MustNew() *DefaultValidator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func (d *DefaultValidator) Validate(s any) error {
	return d.v.Struct(s)
}

// Details convierte un error de validación en detalles por campo. Devuelve nil si no lo es.
func Details(err error) []FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, FieldError{Field: fe.Field(), Message: Message(fe)})
	}
	return out
}

// Message traduce un FieldError a un mensaje legible.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "min", "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "date":
		return "debe tener formato AAAA-MM-DD"
	case "oneof":
		return fmt.Sprintf("debe ser uno de [%s]", fe.Param())
	case "required_without":
		return fmt.Sprintf("obligatorio si no se informa %s", fe.Param())
	default:
		return "valor inválido"
	}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
