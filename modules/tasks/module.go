package tasks

import (
	"embed"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/iota-console/modules/tasks/domain/task"
	"github.com/iota-uz/iota-console/modules/tasks/infrastructure/persistence"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/resource"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

const Namespace = "Tasks"

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&localeFiles)
	members := task.Statuses.Members()
	statuses := make([]string, len(members))
	for i, s := range members {
		statuses[i] = string(s)
	}
	app.RegisterResources(application.Resource{
		Name:      persistence.Resource,
		Namespace: Namespace,
		Statuses:  statuses,
	})
	return nil
}

func (m *Module) Name() string {
	return "tasks"
}

func Schema() *resource.Schema[task.Task, task.Status] {
	return &resource.Schema[task.Task, task.Status]{
		Resource:  persistence.Resource,
		Namespace: Namespace,
		Statuses:  task.Statuses,
		Defaults:  task.New,
		ID:        func(t task.Task) string { return t.ID },
		SetID:     func(t *task.Task, id string) { t.ID = id },
		Status:    func(t task.Task) task.Status { return t.Status },
		SetStatus: func(t *task.Task, s task.Status) { t.Status = s },
		Fields: []resource.Field[task.Task]{
			{Name: "title", LabelKey: "Tasks.Fields.Title", Text: func(t task.Task) string { return t.Title }},
			{Name: "description", LabelKey: "Tasks.Fields.Description", Text: func(t task.Task) string { return t.Description }},
			{Name: "assignee", LabelKey: "Tasks.Fields.Assignee", Text: func(t task.Task) string { return t.Assignee }},
			{
				Name:     "priority",
				LabelKey: "Tasks.Fields.Priority",
				Text:     func(t task.Task) string { return strconv.Itoa(t.Priority) },
				Number:   func(t task.Task) decimal.Decimal { return decimal.NewFromInt(int64(t.Priority)) },
			},
			{
				Name:     "estimate_hours",
				LabelKey: "Tasks.Fields.EstimateHours",
				Text:     func(t task.Task) string { return t.EstimateHours.String() },
				Number:   func(t task.Task) decimal.Decimal { return t.EstimateHours },
			},
			// YYYY-MM-DD sorts chronologically as text.
			{Name: "due_date", LabelKey: "Tasks.Fields.DueDate", Text: func(t task.Task) string { return t.DueDate }},
			{Name: resource.StatusField, LabelKey: "Tasks.Fields.Status", Text: func(t task.Task) string { return string(t.Status) }},
		},
		Search:   []string{"title", "description", "assignee"},
		Filters:  []string{resource.StatusField, "assignee", "priority"},
		Validate: task.Validate,
	}
}

func NewListController(deps resource.Dependencies[task.Task]) *resource.ListController[task.Task, task.Status] {
	return resource.NewListController(Schema(), deps)
}
