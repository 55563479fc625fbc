package constants

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// localpart@domain.tld, no whitespace anywhere.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

	// Optional leading '+', 7 to 15 digits once separators are stripped.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("email_tld", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func IsEmail(v string) bool {
	return emailPattern.MatchString(strings.TrimSpace(v))
}

// IsPhone accepts international numbers written with common separators,
// e.g. "+998 (90) 123-45-67".
func IsPhone(v string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(strings.TrimSpace(v)))
}
