package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// dates validate as their text form so "required" means "set"
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(timex.Date); ok {
			return d.String()
		}
		return nil
	}, timex.Date{})

	_ = v.RegisterValidation("goalstatus", func(fl validator.FieldLevel) bool {
		s := GoalStatus(fl.Field().String())
		for _, known := range GoalStatuses {
			if s == known {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("symptom", func(fl validator.FieldLevel) bool {
		return isSymptom(fl.Field().String())
	})

	return v
}

// Validate checks a record before it is sent to the Gateway. Failures wrap
// common.ErrValidationFailed and carry a message fit for display, e.g.
// "title is required".
func Validate(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", common.ErrValidationFailed, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidationFailed, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i > 0 {
		field = field[:i]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "goalstatus":
		return fmt.Sprintf("%s must be one of not-started, in-progress, completed, abandoned", field)
	case "symptom":
		return fmt.Sprintf("%s: unknown symptom %q", field, fe.Value())
	default:
		return field + " is invalid"
	}
}
