package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// ErrorResponse campo que no pasó la validación.
type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

// Errors lista de fallos de validación. Unwrap devuelve domain.ErrInvalidInput.
type Errors []*ErrorResponse

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		if f.Value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", f.FailedField, f.Tag, f.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", f.FailedField, f.Tag))
		}
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return domain.ErrInvalidInput }

var validate = validator.New()

func init() {
	// Nombre del campo según su tag json, para que el cliente lo reconozca.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal se valida como su representación en texto.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// dgt / dgte: comparación de un decimal contra el parámetro.
	validate.RegisterValidation("dgt", decimalCmp(func(c int) bool { return c > 0 }))
	validate.RegisterValidation("dgte", decimalCmp(func(c int) bool { return c >= 0 }))

	validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.Category(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return entity.Unit(fl.Field().String()).Valid()
	})
}

func decimalCmp(ok func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(d.Cmp(bound))
	}
}

// ValidateStruct valida los tags `validate` del struct. Devuelve nil si todo es válido.
// Los campos puntero nil se saltan con `omitempty`; para decimales se usa `omitnil`.
func ValidateStruct(data interface{}) Errors {
	var out Errors
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{FailedField: "body", Tag: "invalid"}}
	}
	for _, fe := range verrs {
		out = append(out, &ErrorResponse{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}
