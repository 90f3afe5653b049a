package validator

import (
	"errors"
	"fmt"

	"go-pharmacy-inventory/internal/model"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for calendar dates (struct type, so "required" is skipped)
	validate.RegisterValidation("date_required", func(fl validator.FieldLevel) bool {
		if d, ok := fl.Field().Interface().(model.Date); ok {
			return !d.IsZero()
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrs {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errs = append(errs, &element)
		}
	}
	return errs
}

// Validate runs ValidateStruct and converts the first failure into a *model.ValidationError.
func Validate(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return &model.ValidationError{
		Field:   first.FailedField,
		Tag:     first.Tag,
		Message: describe(first),
	}
}

func describe(e *ErrorResponse) string {
	switch e.Tag {
	case "required", "date_required":
		return fmt.Sprintf("Field '%s' is required", e.FailedField)
	case "gte":
		return fmt.Sprintf("Field '%s' must be >= %s", e.FailedField, e.Value)
	case "gt":
		return fmt.Sprintf("Field '%s' must be > %s", e.FailedField, e.Value)
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of [%s]", e.FailedField, e.Value)
	}
	return fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}
