package intl

import (
	"github.com/iota-uz/go-i18n/v2/i18n"
)

// Translator resolves user-facing labels. Callers must never branch on the
// returned text.
type Translator interface {
	T(key string, params map[string]any) string
}

type localizerTranslator struct {
	localizer *i18n.Localizer
}

// NewTranslator wraps a go-i18n localizer. Missing keys render as the key
// itself so a gap in a locale file never blanks out a label.
func NewTranslator(l *i18n.Localizer) Translator {
	return &localizerTranslator{localizer: l}
}

func (t *localizerTranslator) T(key string, params map[string]any) string {
	if t.localizer == nil {
		return key
	}
	var data any
	if len(params) > 0 {
		data = params
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// KeyTranslator returns keys unchanged; useful where no bundle is loaded.
type KeyTranslator struct{}

func (KeyTranslator) T(key string, _ map[string]any) string {
	return key
}
