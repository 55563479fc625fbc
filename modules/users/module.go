package users

import (
	"embed"

	"github.com/iota-uz/iota-console/modules/users/domain/user"
	"github.com/iota-uz/iota-console/modules/users/infrastructure/persistence"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/resource"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

const Namespace = "Users"

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&localeFiles)
	app.RegisterResources(application.Resource{
		Name:      persistence.Resource,
		Namespace: Namespace,
		Statuses:  []string{string(user.StatusActive), string(user.StatusInactive)},
	})
	return nil
}

func (m *Module) Name() string {
	return "users"
}

func Schema() *resource.Schema[user.User, user.Status] {
	return &resource.Schema[user.User, user.Status]{
		Resource:  persistence.Resource,
		Namespace: Namespace,
		Statuses:  user.Statuses,
		Defaults:  user.New,
		ID:        func(u user.User) string { return u.ID },
		SetID:     func(u *user.User, id string) { u.ID = id },
		Status:    func(u user.User) user.Status { return u.Status },
		SetStatus: func(u *user.User, s user.Status) { u.Status = s },
		Fields: []resource.Field[user.User]{
			{Name: "name", LabelKey: "Users.Fields.FullName", Text: user.User.FullName},
			{Name: "last_name", LabelKey: "Users.Fields.LastName", Text: func(u user.User) string { return u.LastName }},
			{Name: "email", LabelKey: "Users.Fields.Email", Text: func(u user.User) string { return u.Email }},
			{Name: "phone", LabelKey: "Users.Fields.Phone", Text: func(u user.User) string { return u.Phone }},
			{Name: "role", LabelKey: "Users.Fields.Role", Text: func(u user.User) string { return string(u.Role) }},
			{Name: "language", LabelKey: "Users.Fields.Language", Text: func(u user.User) string { return u.Language }},
			{Name: resource.StatusField, LabelKey: "Users.Fields.Status", Text: func(u user.User) string { return string(u.Status) }},
		},
		Search:   []string{"name", "email", "phone"},
		Filters:  []string{resource.StatusField, "role"},
		Validate: user.Validate,
	}
}

func NewListController(deps resource.Dependencies[user.User]) *resource.ListController[user.User, user.Status] {
	return resource.NewListController(Schema(), deps)
}
