package organization

import (
	"time"

	"github.com/iota-uz/iota-console/pkg/resource"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

var Statuses = resource.NewStatusSet(StatusActive, StatusActive, StatusArchived)

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Website   string    `json:"website"`
	Employees int       `json:"employees"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func New() Organization {
	return Organization{Status: StatusActive}
}
