package resource

import "context"

// Repository is the transport for one entity type. Implementations hold no
// mutable state and are safe for concurrent use. Every method is a point
// where the caller waits on the backend.
type Repository[E any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, id string, e E) (E, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user to approve an irreversible action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpReload Op = "reload"
)

// ChangedEvent is published after the collection changed in response to a
// confirmed repository result.
type ChangedEvent struct {
	Resource string
	Op       Op
	ID       string
}

// LoadFailedEvent is published when the initial fetch fails.
type LoadFailedEvent struct {
	Resource string
	Err      error
}
