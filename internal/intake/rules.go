package intake

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// Plausibility only: digits, spaces, +, -, parentheses.
	phonePattern = regexp.MustCompile(`^[\d\s+()-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	timeLayouts = []string{"15:04", "15:04:05"}
)

// validate is safe for concurrent use once built.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their json names, the keys of ValidationError
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"phone": func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
		"contact_email": func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		},
		"date_ymd": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateLayout, fl.Field().String())
			return err == nil
		},
		"time_of_day": func(fl validator.FieldLevel) bool {
			return validTimeOfDay(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("intake: register " + tag + ": " + err.Error())
		}
	}
	return v
}

func validTimeOfDay(v string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

var requiredMessages = map[string]string{
	FieldFirstName: "first name is required",
	FieldPhone:     "phone is required",
	FieldDate:      "date is required",
	FieldTime:      "time is required",
	FieldSubject:   "subject is required",
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		if m, ok := requiredMessages[fe.Field()]; ok {
			return m
		}
		return fe.Field() + " is required"
	case "phone":
		return "invalid phone number"
	case "contact_email":
		return "invalid email"
	case "date_ymd":
		return "date must be YYYY-MM-DD"
	case "time_of_day":
		return "time must be HH:MM or HH:MM:SS"
	case "oneof":
		return "language must be FR or EN"
	default:
		return "invalid value"
	}
}

// collect folds a validator result into fields. Errors that are not field
// failures are returned as is.
func collect(err error, fields map[string]string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return nil
}
