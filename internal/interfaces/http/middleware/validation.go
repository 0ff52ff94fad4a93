package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/respawnadega/storefront/internal/domain/shared/valueobject"
	"github.com/respawnadega/storefront/internal/interfaces/http/dto"
)

// SetupValidator configures gin's validator: JSON field names in errors and
// the storefront's custom tags
//   - br_state: one of the 27 Brazilian state codes (UF)
//   - cep: a postal code with 8 digits once formatting is removed
//   - br_phone: a phone number with at least 10 digits
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	validations := map[string]validator.Func{
		"br_state": func(fl validator.FieldLevel) bool {
			return valueobject.IsValidStateCode(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
		},
		"cep": func(fl validator.FieldLevel) bool {
			return len(valueobject.OnlyDigits(fl.Field().String())) == 8
		},
		"br_phone": func(fl validator.FieldLevel) bool {
			return valueobject.IsValidBrazilianPhone(fl.Field().String())
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// ValidationDetails converts binding errors into per-field details. It
// returns nil for errors that are not validation failures, such as
// malformed JSON.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   fieldPath(e),
			Message: validationMessage(e),
		})
	}
	return details
}

// fieldPath returns the JSON path of the field without the root struct
// name, e.g. "address.zip_code"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "numeric":
		return "Must be numeric"
	case "br_state":
		return "Must be a valid Brazilian state code (UF)"
	case "cep":
		return "Must be a valid CEP with 8 digits"
	case "br_phone":
		return "Must be a phone number with area code (at least 10 digits)"
	default:
		return "Invalid value"
	}
}
