package serrors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type sample struct {
	Name     string `validate:"required"`
	Priority int    `validate:"min=1,max=5"`
}

func newLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.English,
		&i18n.Message{ID: "ValidationErrors.required", Other: "{{.Field}} cannot be empty"},
		&i18n.Message{ID: "Sample.Fields.Name", Other: "Full name"},
	))
	return i18n.NewLocalizer(bundle, "en")
}

func TestProcessValidatorErrors(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(&sample{Priority: 9})
	require.Error(t, err)

	errs := ProcessValidatorErrors(err.(validator.ValidationErrors), func(field string) string {
		if field == "Name" {
			return "Sample.Fields.Name"
		}
		return ""
	})
	require.Len(t, errs, 2)
	assert.Equal(t, "VALIDATION_REQUIRED", errs["Name"].Code)
	assert.Equal(t, "Priority must be at most 5", errs["Priority"].Message)
}

func TestLocalizeValidationErrors(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(&sample{Priority: 0})
	require.Error(t, err)
	errs := ProcessValidatorErrors(err.(validator.ValidationErrors), func(field string) string {
		return "Sample.Fields." + field
	})

	t.Run("with localizer", func(t *testing.T) {
		out := LocalizeValidationErrors(errs, newLocalizer(t))
		assert.Equal(t, "Full name cannot be empty", out["Name"])
		// no translation registered for min: fallback message is used
		assert.Equal(t, "Priority must be at least 1", out["Priority"])
	})

	t.Run("without localizer", func(t *testing.T) {
		out := LocalizeValidationErrors(errs, nil)
		assert.Equal(t, "Name is required", out["Name"])
	})
}

func TestBaseError_Localize(t *testing.T) {
	t.Parallel()

	e := NewError("X", "fallback", "")
	assert.Equal(t, "fallback", e.Localize(newLocalizer(t)))
	assert.Equal(t, "fallback", e.Error())
}

func TestLocalizeValidatorError(t *testing.T) {
	t.Parallel()

	l := newLocalizer(t)

	err := validator.New().Struct(&sample{Priority: 3})
	require.Error(t, err)
	got := LocalizeValidatorError(err, func(string) string { return "Sample.Fields.Name" }, l)
	assert.Equal(t, map[string]string{"Name": "Full name cannot be empty"}, got)

	err = validator.New().Struct(42)
	var invalid *validator.InvalidValidationError
	require.ErrorAs(t, err, &invalid)
	assert.NotPanics(t, func() {
		got = LocalizeValidatorError(err, nil, l)
	})
	assert.Equal(t, map[string]string{FormErrorKey: "The form could not be validated"}, got)
}
