// Package mockapi is an in-memory development backend speaking the
// console's REST contract. It serves every resource registered in the
// application and is used by cmd/mockapi and integration tests.
package mockapi

import (
	"github.com/iota-uz/iota-console/pkg/application"
)

// New returns a controller with an empty store for every resource app
// knows about.
func New(app application.Application, opts Options) *Controller {
	resources := app.Resources()
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = r.Name
	}
	if opts.Logger == nil {
		opts.Logger = app.Logger()
	}
	return NewController(NewStore(names...), opts)
}
