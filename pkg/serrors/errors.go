package serrors

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
)

// BaseError carries a stable machine code, a fallback message and the locale
// key used to render it for a user.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	cp := *e
	cp.TemplateData = data
	return &cp
}

// Localize renders the error with l, falling back to Message when the
// localizer is missing or has no entry for LocaleKey.
func (e *BaseError) Localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    e.LocaleKey,
		TemplateData: e.TemplateData,
		DefaultMessage: &i18n.Message{
			ID:    e.LocaleKey,
			Other: e.Message,
		},
	})
	if err != nil || strings.TrimSpace(msg) == "" {
		return e.Message
	}
	return msg
}

// ValidationErrors maps a struct field name to its first failed rule.
type ValidationErrors map[string]*BaseError

// ProcessValidatorErrors converts validator output into ValidationErrors.
// fieldLocaleKey returns the locale key of a field's label, or "" to use the
// raw field name.
func ProcessValidatorErrors(errs validator.ValidationErrors, fieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		labelKey := ""
		if fieldLocaleKey != nil {
			labelKey = fieldLocaleKey(field)
		}
		out[field] = &BaseError{
			Code:      "VALIDATION_" + strings.ToUpper(fe.Tag()),
			Message:   fallbackMessage(field, fe.Tag(), fe.Param()),
			LocaleKey: fmt.Sprintf("ValidationErrors.%s", fe.Tag()),
			TemplateData: map[string]string{
				"Field":    field,
				"FieldKey": labelKey,
				"Param":    fe.Param(),
			},
		}
	}
	return out
}

// LocalizeValidationErrors renders every entry. Field labels are localized
// first so that messages read "Name is required" rather than "Name".
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, e := range errs {
		data := make(map[string]string, len(e.TemplateData))
		for k, v := range e.TemplateData {
			data[k] = v
		}
		if key := data["FieldKey"]; key != "" && l != nil {
			if label, err := l.Localize(&i18n.LocalizeConfig{MessageID: key}); err == nil && label != "" {
				data["Field"] = label
			}
		}
		out[field] = e.WithTemplateData(data).Localize(l)
	}
	return out
}

// FormErrorKey holds a message that belongs to no single field.
const FormErrorKey = "_form"

var errInvalidForm = NewError("VALIDATION_FAILED", "The form could not be validated", "ValidationErrors.Invalid")

// LocalizeValidatorError renders the error returned by validator.Struct.
// Anything other than ValidationErrors yields one generic message under
// FormErrorKey.
func LocalizeValidatorError(err error, fieldLocaleKey func(field string) string, l *i18n.Localizer) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{FormErrorKey: errInvalidForm.Localize(l)}
	}
	return LocalizeValidationErrors(ProcessValidatorErrors(fieldErrs, fieldLocaleKey), l)
}

func fallbackMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email", "email_tld":
		return field + " must be a valid email address"
	case "phone":
		return field + " must be a valid phone number"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "datetime":
		return field + " must be a valid date"
	default:
		return field + " is invalid"
	}
}
