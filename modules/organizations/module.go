package organizations

import (
	"embed"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/iota-console/modules/organizations/domain/organization"
	"github.com/iota-uz/iota-console/modules/organizations/infrastructure/persistence"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/resource"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

const Namespace = "Organizations"

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&localeFiles)
	app.RegisterResources(application.Resource{
		Name:      persistence.Resource,
		Namespace: Namespace,
		Statuses:  []string{string(organization.StatusActive), string(organization.StatusArchived)},
	})
	return nil
}

func (m *Module) Name() string {
	return "organizations"
}

// Schema describes organizations. Viewing one opens the read-only detail
// panel rather than the form.
func Schema() *resource.Schema[organization.Organization, organization.Status] {
	type org = organization.Organization
	return &resource.Schema[org, organization.Status]{
		Resource:  persistence.Resource,
		Namespace: Namespace,
		Statuses:  organization.Statuses,
		Defaults:  organization.New,
		ID:        func(o org) string { return o.ID },
		SetID:     func(o *org, id string) { o.ID = id },
		Status:    func(o org) organization.Status { return o.Status },
		SetStatus: func(o *org, s organization.Status) { o.Status = s },
		Fields: []resource.Field[org]{
			{Name: "name", LabelKey: "Organizations.Fields.Name", Text: func(o org) string { return o.Name }},
			{Name: "code", LabelKey: "Organizations.Fields.Code", Text: func(o org) string { return o.Code }},
			{Name: "email", LabelKey: "Organizations.Fields.Email", Text: func(o org) string { return o.Email }},
			{Name: "phone", LabelKey: "Organizations.Fields.Phone", Text: func(o org) string { return o.Phone }},
			{Name: "website", LabelKey: "Organizations.Fields.Website", Text: func(o org) string { return o.Website }},
			{
				Name:     "employees",
				LabelKey: "Organizations.Fields.Employees",
				Text:     func(o org) string { return strconv.Itoa(o.Employees) },
				Number:   func(o org) decimal.Decimal { return decimal.NewFromInt(int64(o.Employees)) },
			},
			{Name: resource.StatusField, LabelKey: "Organizations.Fields.Status", Text: func(o org) string { return string(o.Status) }},
		},
		Search:     []string{"name", "code", "email"},
		Filters:    []string{resource.StatusField},
		Validate:   organization.Validate,
		DetailView: true,
	}
}

func NewListController(deps resource.Dependencies[organization.Organization]) *resource.ListController[organization.Organization, organization.Status] {
	return resource.NewListController(Schema(), deps)
}
