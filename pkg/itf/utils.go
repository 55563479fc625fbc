package itf

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-console/pkg/notify"
)

var ErrFakeNotFound = errors.New("itf: not found")

// Call records one repository invocation.
type Call struct {
	Op string
	ID string
}

// Repository is a scriptable in-memory fake. Nil hooks fall back to
// returning Items for List, ErrFakeNotFound for Get and echoing the entity
// for Create and Update.
type Repository[E any] struct {
	Items []E

	ListFn   func(ctx context.Context) ([]E, error)
	GetFn    func(ctx context.Context, id string) (E, error)
	CreateFn func(ctx context.Context, e E) (E, error)
	UpdateFn func(ctx context.Context, id string, e E) (E, error)
	DeleteFn func(ctx context.Context, id string) error

	mu    sync.Mutex
	calls []Call
}

func (r *Repository[E]) record(op, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: op, ID: id})
}

func (r *Repository[E]) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how often op was called.
func (r *Repository[E]) Count(op string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Repository[E]) List(ctx context.Context) ([]E, error) {
	r.record("list", "")
	if r.ListFn != nil {
		return r.ListFn(ctx)
	}
	return append([]E(nil), r.Items...), nil
}

func (r *Repository[E]) Get(ctx context.Context, id string) (E, error) {
	r.record("get", id)
	if r.GetFn != nil {
		return r.GetFn(ctx, id)
	}
	var zero E
	return zero, ErrFakeNotFound
}

func (r *Repository[E]) Create(ctx context.Context, e E) (E, error) {
	r.record("create", "")
	if r.CreateFn != nil {
		return r.CreateFn(ctx, e)
	}
	return e, nil
}

func (r *Repository[E]) Update(ctx context.Context, id string, e E) (E, error) {
	r.record("update", id)
	if r.UpdateFn != nil {
		return r.UpdateFn(ctx, id, e)
	}
	return e, nil
}

func (r *Repository[E]) Delete(ctx context.Context, id string) error {
	r.record("delete", id)
	if r.DeleteFn != nil {
		return r.DeleteFn(ctx, id)
	}
	return nil
}

type Notification struct {
	Message  string
	Severity notify.Severity
}

// NotificationRecorder is a notify.Notifier that keeps everything it got.
type NotificationRecorder struct {
	mu      sync.Mutex
	entries []Notification
}

func (n *NotificationRecorder) Notify(message string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, Notification{Message: message, Severity: severity})
}

func (n *NotificationRecorder) Entries() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.entries...)
}

// Count returns the number of notifications with severity.
func (n *NotificationRecorder) Count(severity notify.Severity) int {
	count := 0
	for _, e := range n.Entries() {
		if e.Severity == severity {
			count++
		}
	}
	return count
}

// Confirmer answers every prompt with Answer and records the prompts.
type Confirmer struct {
	Answer bool

	mu      sync.Mutex
	prompts []string
}

func Confirm(answer bool) *Confirmer {
	return &Confirmer{Answer: answer}
}

func (c *Confirmer) Confirm(ctx context.Context, prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.Answer
}

func (c *Confirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}
