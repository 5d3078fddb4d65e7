// Package validation wraps go-playground/validator with the closed
// enumerations of the inquiry form and translates failures into the
// human-readable messages the web form shows.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brightpixel/agency-backend/internal/model"
)

var validate = newValidator()

// phonePattern accepts an optional leading + followed by digits, spaces,
// dashes, dots and parentheses. Digit count is checked separately.
var phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-().]{7,20}$`)

var nonDigits = regexp.MustCompile(`\D`)

func newValidator() *validator.Validate {
	v := validator.New()

	mustRegister(v, "intl_phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !phonePattern.MatchString(s) {
			return false
		}
		digits := nonDigits.ReplaceAllString(s, "")
		return len(digits) >= 7 && len(digits) <= 15
	})
	mustRegister(v, "service_enum", func(fl validator.FieldLevel) bool {
		return model.ValidService(fl.Field().String())
	})
	mustRegister(v, "budget_enum", func(fl validator.FieldLevel) bool {
		return model.ValidBudget(fl.Field().String())
	})
	mustRegister(v, "source_enum", func(fl validator.FieldLevel) bool {
		return model.ValidReferralSource(fl.Field().String())
	})
	mustRegister(v, "status_enum", func(fl validator.FieldLevel) bool {
		return model.ValidStatus(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates s and returns one message per failing field, or nil when
// everything passes.
func Struct(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	ferrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(ferrs))
	for _, fe := range ferrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	// Dive errors report the field as e.g. "ServicesInterested[2]".
	name := fe.StructField()
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}

	switch name {
	case "FirstName":
		switch fe.Tag() {
		case "required":
			return "First name is required"
		case "min":
			return "First name must be at least 2 characters"
		case "max":
			return "First name cannot exceed 50 characters"
		}
	case "LastName":
		switch fe.Tag() {
		case "required":
			return "Last name is required"
		case "min":
			return "Last name must be at least 2 characters"
		case "max":
			return "Last name cannot exceed 50 characters"
		}
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Please provide a valid email address"
	case "Phone":
		if fe.Tag() == "required" {
			return "Phone number is required"
		}
		return "Please provide a valid international phone number (7-15 digits)"
	case "Company":
		return "Company name cannot exceed 100 characters"
	case "Message":
		return "Message cannot exceed 1000 characters"
	case "ServicesInterested":
		switch fe.Tag() {
		case "required", "min":
			return "Please select at least one service"
		case "service_enum":
			return fmt.Sprintf("%v is not a valid service", fe.Value())
		}
	case "Budget":
		return fmt.Sprintf("%v is not a valid budget range", fe.Value())
	case "HowDidYouHear":
		return fmt.Sprintf("%v is not a valid referral source", fe.Value())
	case "Status":
		return fmt.Sprintf("%v is not a valid status", fe.Value())
	}
	return fmt.Sprintf("%s is invalid", name)
}
