package persistence

import (
	"time"

	"github.com/iota-uz/iota-console/modules/clients/domain/client"
	"github.com/iota-uz/iota-console/pkg/rest"
)

const Resource = "clients"

type ClientCodec struct{}

func (ClientCodec) Decode(rec rest.Record) client.Client {
	return client.Client{
		ID:        rec.ID(),
		Name:      rec.String("name"),
		Email:     rec.String("email"),
		Phone:     rec.String("phone"),
		Company:   rec.String("company"),
		Address:   rec.String("address"),
		Notes:     rec.String("notes"),
		Status:    client.Statuses.Normalize(rec.Raw("status")),
		CreatedAt: rec.Time("created_at", "createdAt"),
	}
}

func (ClientCodec) Encode(c client.Client) map[string]any {
	out := map[string]any{
		"name":    c.Name,
		"email":   c.Email,
		"phone":   c.Phone,
		"company": c.Company,
		"address": c.Address,
		"notes":   c.Notes,
		"status":  string(client.Statuses.Normalize(c.Status)),
	}
	if !c.CreatedAt.IsZero() {
		out["created_at"] = c.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func NewClientRepository(opts rest.Options) (*rest.Repository[client.Client], error) {
	return rest.NewRepository[client.Client](Resource, ClientCodec{}, opts)
}
