package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/iota-console/pkg/constants"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/serrors"
)

type DTO struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Assignee      string  `json:"assignee" validate:"max=255"`
	Priority      int     `json:"priority" validate:"gte=1,lte=5"`
	EstimateHours float64 `json:"estimate_hours" validate:"gte=0,lte=1000"`
	DueDate       string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func NewDTO(t Task) *DTO {
	return &DTO{
		Title:         t.Title,
		Description:   t.Description,
		Assignee:      t.Assignee,
		Priority:      t.Priority,
		EstimateHours: t.EstimateHours.InexactFloat64(),
		DueDate:       t.DueDate,
	}
}

func (d *DTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Assignee = strings.TrimSpace(d.Assignee)
	d.DueDate = strings.TrimSpace(d.DueDate)
}

func (d *DTO) Ok(ctx context.Context) (map[string]string, bool) {
	l, _ := intl.UseLocalizer(ctx)

	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	getFieldLocaleKey := func(field string) string {
		return fmt.Sprintf("Tasks.Fields.%s", field)
	}
	return serrors.LocalizeValidatorError(errs, getFieldLocaleKey, l), false
}

func Validate(ctx context.Context, t Task) (map[string]string, bool) {
	return NewDTO(t).Ok(ctx)
}
