package organization

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/iota-console/pkg/constants"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/serrors"
)

type DTO struct {
	Name      string `json:"name" validate:"required,max=255"`
	Code      string `json:"code" validate:"required,alphanum,max=32"`
	Email     string `json:"email" validate:"omitempty,email_tld"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Website   string `json:"website" validate:"omitempty,url"`
	Employees int    `json:"employees" validate:"gte=0,lte=1000000"`
}

func NewDTO(o Organization) *DTO {
	return &DTO{
		Name:      o.Name,
		Code:      o.Code,
		Email:     o.Email,
		Phone:     o.Phone,
		Website:   o.Website,
		Employees: o.Employees,
	}
}

func (d *DTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Website = strings.TrimSpace(d.Website)
}

func (d *DTO) Ok(ctx context.Context) (map[string]string, bool) {
	l, _ := intl.UseLocalizer(ctx)

	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	getFieldLocaleKey := func(field string) string {
		return fmt.Sprintf("Organizations.Fields.%s", field)
	}
	return serrors.LocalizeValidatorError(errs, getFieldLocaleKey, l), false
}

func Validate(ctx context.Context, o Organization) (map[string]string, bool) {
	return NewDTO(o).Ok(ctx)
}
