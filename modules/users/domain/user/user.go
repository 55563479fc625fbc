package user

import (
	"strings"
	"time"

	"github.com/iota-uz/iota-console/pkg/resource"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var Statuses = resource.NewStatusSet(StatusActive, StatusActive, StatusInactive)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// Roles is a second closed set; unknown roles read as member.
var Roles = resource.NewStatusSet(RoleMember, RoleAdmin, RoleManager, RoleMember)

type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Language  string    `json:"language"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func New() User {
	return User{Status: StatusActive, Role: RoleMember, Language: "en"}
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
