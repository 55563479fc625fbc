package resource

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusField is the field name every schema uses for its status.
const StatusField = "status"

// Field describes one entity field the list can search, filter, sort or
// export. Text is required. Fields with a Number accessor sort numerically.
type Field[E any] struct {
	Name     string
	LabelKey string
	Text     func(E) string
	Number   func(E) decimal.Decimal
}

func (f Field[E]) Numeric() bool {
	return f.Number != nil
}

// Schema is the per-entity configuration the generic controllers run on.
type Schema[E any, S ~string] struct {
	// Resource is the REST collection name, e.g. "clients".
	Resource string
	// Namespace prefixes the locale keys of labels and notifications.
	Namespace string
	Statuses  StatusSet[S]

	Defaults  func() E
	ID        func(E) string
	SetID     func(*E, string)
	Status    func(E) S
	SetStatus func(*E, S)

	Fields  []Field[E]
	Search  []string
	Filters []string

	// Validate returns field level messages; ok is false when any exist.
	Validate func(ctx context.Context, draft E) (errs map[string]string, ok bool)

	// DetailView routes OpenView to a read-only detail panel.
	DetailView bool
}

// Guard returns e with its status repaired to a legal member.
func (s *Schema[E, S]) Guard(e E) E {
	s.SetStatus(&e, s.Statuses.Normalize(s.Status(e)))
	return e
}

// NewDraft returns the defaults with a legal status.
func (s *Schema[E, S]) NewDraft() E {
	var e E
	if s.Defaults != nil {
		e = s.Defaults()
	}
	return s.Guard(e)
}

func (s *Schema[E, S]) Field(name string) (Field[E], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[E]{}, false
}

func (s *Schema[E, S]) validate(ctx context.Context, draft E) (map[string]string, bool) {
	if s.Validate == nil {
		return nil, true
	}
	return s.Validate(ctx, draft)
}

func (s *Schema[E, S]) key(suffix string) string {
	if s.Namespace == "" {
		return suffix
	}
	return s.Namespace + "." + suffix
}
