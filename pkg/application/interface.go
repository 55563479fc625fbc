package application

import (
	"embed"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-console/pkg/eventbus"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// Resource describes one REST collection a module manages.
type Resource struct {
	// Name is the collection segment in /api/{name}.
	Name string
	// Namespace prefixes the module's locale keys.
	Namespace string
	// Statuses lists the legal status values, fallback first.
	Statuses []string
}

// Application is the registry modules contribute to.
type Application interface {
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Bundle() *i18n.Bundle
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Resources() []Resource
	Resource(name string) (Resource, bool)
	GetSupportedLanguages() []string
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterResources(resources ...Resource)
}
