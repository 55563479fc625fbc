package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/iota-console/pkg/constants"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/serrors"
)

type DTO struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email_tld"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Company string `json:"company" validate:"max=255"`
	Address string `json:"address" validate:"max=500"`
	Notes   string `json:"notes" validate:"max=2000"`
}

func NewDTO(c Client) *DTO {
	return &DTO{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Address: c.Address,
		Notes:   c.Notes,
	}
}

func (d *DTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)
}

// Ok validates the DTO and returns localized messages keyed by field name.
// Without a localizer in ctx the messages fall back to English.
func (d *DTO) Ok(ctx context.Context) (map[string]string, bool) {
	l, _ := intl.UseLocalizer(ctx)

	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	getFieldLocaleKey := func(field string) string {
		return fmt.Sprintf("Clients.Fields.%s", field)
	}
	return serrors.LocalizeValidatorError(errs, getFieldLocaleKey, l), false
}

// Validate runs the DTO rules against a draft.
func Validate(ctx context.Context, c Client) (map[string]string, bool) {
	return NewDTO(c).Ok(ctx)
}
