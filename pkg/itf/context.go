package itf

import (
	"context"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/text/language"

	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/eventbus"
	"github.com/iota-uz/iota-console/pkg/intl"
)

// TestContext provides a fluent API for building test environments.
type TestContext struct {
	ctx     context.Context
	modules []application.Module
	locale  string
}

func NewTestContext() *TestContext {
	return &TestContext{
		ctx:    context.Background(),
		locale: "en",
	}
}

// WithModules registers modules (and their locale files) in the application.
func (tc *TestContext) WithModules(modules ...application.Module) *TestContext {
	tc.modules = append(tc.modules, modules...)
	return tc
}

func (tc *TestContext) WithLocale(code string) *TestContext {
	tc.locale = code
	return tc
}

// TestEnvironment is what a test receives from Build.
type TestEnvironment struct {
	Ctx           context.Context
	App           application.Application
	Localizer     *i18n.Localizer
	Translator    intl.Translator
	Locale        language.Tag
	Logger        *logrus.Logger
	LogHook       *test.Hook
	Notifications *NotificationRecorder
}

func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	app := application.New(&application.ApplicationOptions{
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	for _, m := range tc.modules {
		if err := m.Register(app); err != nil {
			tb.Fatalf("register module %s: %v", m.Name(), err)
		}
	}

	tag := intl.MatchLanguage(tc.locale, intl.SupportedLanguages)
	localizer := i18n.NewLocalizer(app.Bundle(), tag.String())
	ctx := intl.WithLocale(intl.WithLocalizer(tc.ctx, localizer), tag)

	return &TestEnvironment{
		Ctx:           ctx,
		App:           app,
		Localizer:     localizer,
		Translator:    intl.NewTranslator(localizer),
		Locale:        tag,
		Logger:        logger,
		LogHook:       hook,
		Notifications: &NotificationRecorder{},
	}
}
