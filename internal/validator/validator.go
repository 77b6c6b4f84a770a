// Package validator wraps go-playground/validator with the custom tags used
// by the booking forms and reports failures as a field -> message map keyed
// by JSON field name.
package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	tenDigits    = regexp.MustCompile(`^\d{10}$`)
	sixteenDigit = regexp.MustCompile(`^\d{16}$`)
	cvcDigits    = regexp.MustCompile(`^\d{3,4}$`)
	basicEmail   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func init() {
	validate = validator.New()

	// Use JSON tag names in error maps
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// notblank rejects strings that are empty after trimming
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(StripSpaces(fl.Field().String()))
	})

	validate.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return basicEmail.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("card16", func(fl validator.FieldLevel) bool {
		return sixteenDigit.MatchString(StripSpaces(fl.Field().String()))
	})

	validate.RegisterValidation("cvc", func(fl validator.FieldLevel) bool {
		return cvcDigits.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("unique_seats", func(fl validator.FieldLevel) bool {
		seen := make(map[string]struct{})
		f := fl.Field()
		for i := 0; i < f.Len(); i++ {
			v := strings.ToUpper(strings.TrimSpace(f.Index(i).String()))
			if _, dup := seen[v]; dup {
				return false
			}
			seen[v] = struct{}{}
		}
		return true
	})
}

// StripSpaces removes every whitespace rune from s.
func StripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Validate validates a struct and returns a map of field errors, or nil
// when the struct is valid.  Messages may be overridden per field through
// messages, keyed by JSON field name.
func Validate(s interface{}, messages map[string]string) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string)
	for _, fe := range verrs {
		field := fe.Field()
		if _, done := out[field]; done {
			continue
		}
		if msg, ok := messages[field]; ok {
			out[field] = msg
			continue
		}
		switch fe.Tag() {
		case "required", "notblank":
			out[field] = "This field is required"
		case "phone10":
			out[field] = "Phone number must be exactly 10 digits"
		case "basic_email", "email":
			out[field] = "Invalid email format"
		case "card16":
			out[field] = "Card number must be 16 digits"
		case "cvc":
			out[field] = "CVC must be 3 or 4 digits"
		case "unique_seats":
			out[field] = "Seats must be unique"
		case "min":
			out[field] = "Value is too short (min: " + fe.Param() + ")"
		case "gt":
			out[field] = "Value must be greater than " + fe.Param()
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}
