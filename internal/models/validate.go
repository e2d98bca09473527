package models

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// local@domain.tld, nothing fancier
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// optional leading +, then 10-15 digits/spaces/hyphens
	mobileRegex = regexp.MustCompile(`^[+]?[\d\s-]{10,15}$`)
)

// RegisterValidations installs the custom binding validations on gin's
// validator engine. Must be called once before the router serves requests.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("email_simple", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
}

// ValidEmail reports whether s matches the simple email shape
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidMobile reports whether s matches the mobile number shape
func ValidMobile(s string) bool {
	return mobileRegex.MatchString(s)
}

// BindingErrorMessage maps a ShouldBindJSON failure to a client-facing
// message, preserving the field-specific wording for the format checks
func BindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "email_simple":
				return "Invalid email format"
			case "mobile":
				return "Invalid mobile number format"
			}
		}
	}
	return "Invalid request body"
}
