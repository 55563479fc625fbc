package core

import (
	"embed"

	"github.com/iota-uz/iota-console/pkg/application"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

// NewModule returns the module carrying translations shared by every
// resource: validation messages and common labels.
func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
