package persistence

import (
	"encoding/json"
	"time"

	"github.com/iota-uz/iota-console/modules/tasks/domain/task"
	"github.com/iota-uz/iota-console/pkg/rest"
)

const Resource = "tasks"

type TaskCodec struct{}

func (TaskCodec) Decode(rec rest.Record) task.Task {
	return task.Task{
		ID:            rec.ID(),
		Title:         rec.String("title", "name"),
		Description:   rec.String("description"),
		Assignee:      rec.String("assignee"),
		Priority:      rec.Int("priority"),
		EstimateHours: rec.Decimal("estimate_hours", "estimate"),
		Status:        task.Statuses.Normalize(rec.Raw("status")),
		DueDate:       rec.Date("due_date", "dueDate"),
		CreatedAt:     rec.Time("created_at", "createdAt"),
	}
}

func (TaskCodec) Encode(t task.Task) map[string]any {
	out := map[string]any{
		"title":          t.Title,
		"description":    t.Description,
		"assignee":       t.Assignee,
		"priority":       t.Priority,
		"estimate_hours": json.Number(t.EstimateHours.String()),
		"due_date":       t.DueDate,
		"status":         string(task.Statuses.Normalize(t.Status)),
	}
	if !t.CreatedAt.IsZero() {
		out["created_at"] = t.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func NewTaskRepository(opts rest.Options) (*rest.Repository[task.Task], error) {
	return rest.NewRepository[task.Task](Resource, TaskCodec{}, opts)
}
