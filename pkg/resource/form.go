package resource

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/notify"
)

type FormState int

const (
	FormClosed FormState = iota
	FormCreating
	FormEditing
	FormViewing
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormClosed:
		return "closed"
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	case FormViewing:
		return "viewing"
	case FormSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Outcome is a confirmed write. Entity is the server record with the
// submitted status; Submitted is the draft that was sent.
type Outcome[E any] struct {
	Entity    E
	Submitted E
	Op        Op
}

// FormController drives the single create/edit/view modal. The draft is a
// value copy; nothing outside the controller can reach it. The lock is never
// held while the repository is working.
type FormController[E any, S ~string] struct {
	schema   *Schema[E, S]
	repo     Repository[E]
	notifier notify.Notifier
	tr       intl.Translator
	log      *logrus.Entry

	mu         sync.Mutex
	state      FormState
	resume     FormState
	original   E
	draft      E
	errors     map[string]string
	generation uint64
}

func NewFormController[E any, S ~string](
	schema *Schema[E, S],
	repo Repository[E],
	notifier notify.Notifier,
	tr intl.Translator,
	log *logrus.Logger,
) *FormController[E, S] {
	if notifier == nil {
		notifier = notify.Discard
	}
	if tr == nil {
		tr = intl.KeyTranslator{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FormController[E, S]{
		schema:   schema,
		repo:     repo,
		notifier: notifier,
		tr:       tr,
		log:      log.WithField("resource", schema.Resource),
	}
}

func (f *FormController[E, S]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the draft; ok is false when the form is closed.
func (f *FormController[E, S]) Draft() (E, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft, f.state != FormClosed
}

// Errors returns the field messages of the last failed validation.
func (f *FormController[E, S]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *FormController[E, S]) OpenCreate() error {
	return f.open(FormCreating, f.schema.NewDraft())
}

func (f *FormController[E, S]) OpenEdit(e E) error {
	if f.schema.ID(e) == "" {
		return ErrMissingID
	}
	return f.open(FormEditing, f.schema.Guard(e))
}

func (f *FormController[E, S]) OpenView(e E) error {
	return f.open(FormViewing, f.schema.Guard(e))
}

func (f *FormController[E, S]) open(state FormState, draft E) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return ErrFormBusy
	}
	f.state = state
	f.original = draft
	f.draft = draft
	f.errors = nil
	return nil
}

// Edit applies fn to the draft. The collection is never touched.
func (f *FormController[E, S]) Edit(fn func(*E)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	fn(&f.draft)
	return nil
}

// Changes lists the top level JSON fields the draft changed since opening.
func (f *FormController[E, S]) Changes() ([]string, error) {
	f.mu.Lock()
	original, draft, state := f.original, f.draft, f.state
	f.mu.Unlock()
	if state == FormClosed {
		return nil, nil
	}

	patch, err := jsondiff.Compare(original, draft)
	if err != nil {
		return nil, errors.Wrap(err, "diff draft")
	}
	seen := make(map[string]struct{}, len(patch))
	var fields []string
	for _, op := range patch {
		name := strings.TrimPrefix(string(op.Path), "/")
		if i := strings.IndexByte(name, '/'); i >= 0 {
			name = name[:i]
		}
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return fields, nil
}

func (f *FormController[E, S]) Dirty() bool {
	changes, err := f.Changes()
	return err == nil && len(changes) > 0
}

// Submit validates the draft and writes it: create when it has no id,
// update otherwise. A validation failure returns *ValidationError without
// calling the repository. A repository failure restores the previous state
// with the draft intact and notifies the user.
func (f *FormController[E, S]) Submit(ctx context.Context) (Outcome[E], error) {
	var zero Outcome[E]

	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		return zero, err
	}
	draft := f.schema.Guard(f.draft)
	f.draft = draft
	if errs, ok := f.schema.validate(ctx, draft); !ok {
		f.errors = errs
		f.mu.Unlock()
		return zero, &ValidationError{Fields: errs}
	}
	f.errors = nil
	f.resume = f.state
	f.state = FormSubmitting
	generation := f.generation
	f.mu.Unlock()

	op := OpCreate
	id := f.schema.ID(draft)
	var saved E
	var err error
	if id == "" {
		saved, err = f.repo.Create(ctx, draft)
		if err == nil && f.schema.ID(saved) == "" {
			err = ErrMissingID
		}
	} else {
		op = OpUpdate
		saved, err = f.repo.Update(ctx, id, draft)
	}

	f.mu.Lock()
	if f.generation != generation {
		f.mu.Unlock()
		f.log.WithField("op", op).Debug("dropping write result for a reset form")
		return zero, ErrDiscarded
	}
	if err != nil {
		f.state = f.resume
		f.mu.Unlock()
		f.log.WithFields(logrus.Fields{"op": op, "id": id}).WithError(err).Warn("write failed")
		f.notifier.Notify(f.tr.T(f.schema.key("Notifications.SaveFailed"), map[string]any{"Error": err.Error()}), notify.Error)
		return zero, errors.Wrapf(err, "%s %s", op, f.schema.Resource)
	}

	// The submitted status wins over whatever the server echoed.
	f.schema.SetStatus(&saved, f.schema.Status(draft))
	if op == OpUpdate && f.schema.ID(saved) == "" {
		saved = f.withID(saved, id)
	}
	f.resetLocked()
	f.mu.Unlock()
	return Outcome[E]{Entity: saved, Submitted: draft, Op: op}, nil
}

// Cancel discards the draft without any repository call.
func (f *FormController[E, S]) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return ErrFormBusy
	}
	f.resetLocked()
	return nil
}

// Reset closes the form unconditionally. A submit still in flight will have
// its result dropped.
func (f *FormController[E, S]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *FormController[E, S]) resetLocked() {
	var zero E
	f.state = FormClosed
	f.original = zero
	f.draft = zero
	f.errors = nil
	f.generation++
}

func (f *FormController[E, S]) editableLocked() error {
	switch f.state {
	case FormCreating, FormEditing:
		return nil
	case FormSubmitting:
		return ErrFormBusy
	case FormViewing:
		return ErrReadOnly
	default:
		return ErrFormClosed
	}
}

// withID handles update responses that omit the id; the record is the one
// at the submitted id.
func (f *FormController[E, S]) withID(saved E, id string) E {
	if f.schema.SetID == nil {
		return saved
	}
	f.schema.SetID(&saved, id)
	return saved
}
