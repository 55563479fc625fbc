package resource_test

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/iota-console/pkg/resource"
)

type contactStatus string

const (
	contactActive   contactStatus = "active"
	contactInactive contactStatus = "inactive"
)

type contact struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Age    int           `json:"age"`
	Status contactStatus `json:"status"`
}

func contactSchema() *resource.Schema[contact, contactStatus] {
	return &resource.Schema[contact, contactStatus]{
		Resource:  "contacts",
		Namespace: "Contacts",
		Statuses:  resource.NewStatusSet(contactActive, contactActive, contactInactive),
		Defaults: func() contact {
			return contact{}
		},
		ID:        func(c contact) string { return c.ID },
		SetID:     func(c *contact, id string) { c.ID = id },
		Status:    func(c contact) contactStatus { return c.Status },
		SetStatus: func(c *contact, s contactStatus) { c.Status = s },
		Fields: []resource.Field[contact]{
			{Name: "name", LabelKey: "Contacts.Fields.Name", Text: func(c contact) string { return c.Name }},
			{Name: "email", LabelKey: "Contacts.Fields.Email", Text: func(c contact) string { return c.Email }},
			{
				Name:     "age",
				LabelKey: "Contacts.Fields.Age",
				Text:     func(c contact) string { return strconv.Itoa(c.Age) },
				Number:   func(c contact) decimal.Decimal { return decimal.NewFromInt(int64(c.Age)) },
			},
			{Name: "status", LabelKey: "Contacts.Fields.Status", Text: func(c contact) string { return string(c.Status) }},
		},
		Search:  []string{"name", "email"},
		Filters: []string{"status"},
		Validate: func(ctx context.Context, c contact) (map[string]string, bool) {
			errs := map[string]string{}
			if strings.TrimSpace(c.Name) == "" {
				errs["Name"] = "Name is required"
			}
			if c.Age < 0 || c.Age > 150 {
				errs["Age"] = "Age must be between 0 and 150"
			}
			return errs, len(errs) == 0
		},
	}
}

func names(items []contact) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name
	}
	return out
}
