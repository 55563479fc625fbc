package clients

import (
	"embed"
	"time"

	"github.com/iota-uz/iota-console/modules/clients/domain/client"
	"github.com/iota-uz/iota-console/modules/clients/infrastructure/persistence"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/resource"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

const Namespace = "Clients"

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&localeFiles)
	app.RegisterResources(application.Resource{
		Name:      persistence.Resource,
		Namespace: Namespace,
		Statuses:  statusNames(),
	})
	return nil
}

func (m *Module) Name() string {
	return "clients"
}

// Schema describes how the generic list and form controllers handle
// clients.
func Schema() *resource.Schema[client.Client, client.Status] {
	return &resource.Schema[client.Client, client.Status]{
		Resource:  persistence.Resource,
		Namespace: Namespace,
		Statuses:  client.Statuses,
		Defaults:  client.New,
		ID:        func(c client.Client) string { return c.ID },
		SetID:     func(c *client.Client, id string) { c.ID = id },
		Status:    func(c client.Client) client.Status { return c.Status },
		SetStatus: func(c *client.Client, s client.Status) { c.Status = s },
		Fields: []resource.Field[client.Client]{
			{Name: "name", LabelKey: "Clients.Fields.Name", Text: func(c client.Client) string { return c.Name }},
			{Name: "email", LabelKey: "Clients.Fields.Email", Text: func(c client.Client) string { return c.Email }},
			{Name: "phone", LabelKey: "Clients.Fields.Phone", Text: func(c client.Client) string { return c.Phone }},
			{Name: "company", LabelKey: "Clients.Fields.Company", Text: func(c client.Client) string { return c.Company }},
			{Name: resource.StatusField, LabelKey: "Clients.Fields.Status", Text: func(c client.Client) string { return string(c.Status) }},
			{Name: "created_at", LabelKey: "Clients.Fields.CreatedAt", Text: func(c client.Client) string { return formatTime(c.CreatedAt) }},
		},
		Search:   []string{"name", "email", "phone"},
		Filters:  []string{resource.StatusField},
		Validate: client.Validate,
	}
}

// NewListController binds the client schema to its collaborators.
func NewListController(deps resource.Dependencies[client.Client]) *resource.ListController[client.Client, client.Status] {
	return resource.NewListController(Schema(), deps)
}

func statusNames() []string {
	members := client.Statuses.Members()
	out := make([]string, len(members))
	for i, s := range members {
		out[i] = string(s)
	}
	return out
}

// formatTime renders UTC RFC 3339 so text order is chronological.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
