package persistence

import (
	"time"

	"github.com/iota-uz/iota-console/modules/users/domain/user"
	"github.com/iota-uz/iota-console/pkg/rest"
)

const Resource = "users"

type UserCodec struct{}

func (UserCodec) Decode(rec rest.Record) user.User {
	return user.User{
		ID:        rec.ID(),
		FirstName: rec.String("first_name", "firstName"),
		LastName:  rec.String("last_name", "lastName"),
		Email:     rec.String("email"),
		Phone:     rec.String("phone"),
		Role:      user.Roles.Normalize(rec.Raw("role")),
		Language:  rec.String("language", "ui_language"),
		Status:    user.Statuses.Normalize(rec.Raw("status")),
		CreatedAt: rec.Time("created_at", "createdAt"),
	}
}

func (UserCodec) Encode(u user.User) map[string]any {
	out := map[string]any{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"phone":      u.Phone,
		"role":       string(u.Role),
		"language":   u.Language,
		"status":     string(user.Statuses.Normalize(u.Status)),
	}
	if !u.CreatedAt.IsZero() {
		out["created_at"] = u.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func NewUserRepository(opts rest.Options) (*rest.Repository[user.User], error) {
	return rest.NewRepository[user.User](Resource, UserCodec{}, opts)
}
