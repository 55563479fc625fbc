package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/iota-console/pkg/constants"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/serrors"
)

type DTO struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email_tld"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Role      string `json:"role" validate:"required,oneof=admin manager member"`
	Language  string `json:"language" validate:"omitempty,oneof=en zh"`
}

func NewDTO(u User) *DTO {
	return &DTO{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Language:  u.Language,
	}
}

func (d *DTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Language = strings.ToLower(strings.TrimSpace(d.Language))
}

func (d *DTO) Ok(ctx context.Context) (map[string]string, bool) {
	l, _ := intl.UseLocalizer(ctx)

	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	getFieldLocaleKey := func(field string) string {
		return fmt.Sprintf("Users.Fields.%s", field)
	}
	return serrors.LocalizeValidatorError(errs, getFieldLocaleKey, l), false
}

func Validate(ctx context.Context, u User) (map[string]string, bool) {
	return NewDTO(u).Ok(ctx)
}
