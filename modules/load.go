package modules

import (
	"github.com/iota-uz/iota-console/modules/clients"
	"github.com/iota-uz/iota-console/modules/core"
	"github.com/iota-uz/iota-console/modules/organizations"
	"github.com/iota-uz/iota-console/modules/tasks"
	"github.com/iota-uz/iota-console/modules/users"
	"github.com/iota-uz/iota-console/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		core.NewModule(),
		clients.NewModule(),
		organizations.NewModule(),
		tasks.NewModule(),
		users.NewModule(),
	}
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
