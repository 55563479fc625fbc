package client

import (
	"time"

	"github.com/iota-uz/iota-console/pkg/resource"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Statuses is the closed set a client status is drawn from.
var Statuses = resource.NewStatusSet(StatusActive, StatusActive, StatusInactive)

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func New() Client {
	return Client{Status: StatusActive}
}
