package mappers

import (
	"time"

	"github.com/iota-uz/iota-console/modules/tasks/domain/task"
	"github.com/iota-uz/iota-console/modules/tasks/presentation/viewmodels"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/resource"
)

func TaskToListItem(t task.Task, tr intl.Translator, now time.Time) *viewmodels.TaskListItem {
	return &viewmodels.TaskListItem{
		ID:            t.ID,
		Title:         t.Title,
		Assignee:      t.Assignee,
		Priority:      t.Priority,
		EstimateHours: t.EstimateHours.StringFixed(1),
		DueDate:       t.DueDate,
		Overdue:       t.Overdue(now),
		Status:        string(t.Status),
		StatusLabel:   tr.T("Tasks.Statuses."+string(t.Status), nil),
	}
}

// TasksToListPage renders the view both as a flat list and as one column per
// status, in status order.
func TasksToListPage(ctl *resource.ListController[task.Task, task.Status], tr intl.Translator, now time.Time) *viewmodels.TasksListPageProps {
	view := ctl.View()
	criteria := ctl.Criteria()

	columns := make(map[task.Status]*viewmodels.TaskColumn)
	ordered := make([]*viewmodels.TaskColumn, 0, len(task.Statuses.Members()))
	for _, s := range task.Statuses.Members() {
		col := &viewmodels.TaskColumn{
			Status: string(s),
			Label:  tr.T("Tasks.Statuses."+string(s), nil),
			Items:  []*viewmodels.TaskListItem{},
		}
		columns[s] = col
		ordered = append(ordered, col)
	}

	items := make([]*viewmodels.TaskListItem, 0, len(view))
	for _, t := range view {
		item := TaskToListItem(t, tr, now)
		items = append(items, item)
		if col, ok := columns[t.Status]; ok {
			col.Items = append(col.Items, item)
		}
	}

	props := &viewmodels.TasksListPageProps{
		Title:    tr.T("Tasks.Meta.Title", nil),
		Items:    items,
		Columns:  ordered,
		Total:    len(ctl.Items()),
		Search:   criteria.SearchText,
		State:    ctl.State().String(),
		FormOpen: ctl.FormOpen(),
	}
	if values, err := criteria.Values(); err == nil {
		props.Query = values.Encode()
	}
	return props
}
