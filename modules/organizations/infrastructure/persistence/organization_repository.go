package persistence

import (
	"time"

	"github.com/iota-uz/iota-console/modules/organizations/domain/organization"
	"github.com/iota-uz/iota-console/pkg/rest"
)

const Resource = "organizations"

type OrganizationCodec struct{}

func (OrganizationCodec) Decode(rec rest.Record) organization.Organization {
	return organization.Organization{
		ID:        rec.ID(),
		Name:      rec.String("name"),
		Code:      rec.String("code"),
		Email:     rec.String("email"),
		Phone:     rec.String("phone"),
		Address:   rec.String("address"),
		Website:   rec.String("website", "url"),
		Employees: rec.Int("employees", "employee_count"),
		Status:    organization.Statuses.Normalize(rec.Raw("status")),
		CreatedAt: rec.Time("created_at", "createdAt"),
	}
}

func (OrganizationCodec) Encode(o organization.Organization) map[string]any {
	out := map[string]any{
		"name":      o.Name,
		"code":      o.Code,
		"email":     o.Email,
		"phone":     o.Phone,
		"address":   o.Address,
		"website":   o.Website,
		"employees": o.Employees,
		"status":    string(organization.Statuses.Normalize(o.Status)),
	}
	if !o.CreatedAt.IsZero() {
		out["created_at"] = o.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func NewOrganizationRepository(opts rest.Options) (*rest.Repository[organization.Organization], error) {
	return rest.NewRepository[organization.Organization](Resource, OrganizationCodec{}, opts)
}
