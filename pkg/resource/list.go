package resource

import (
	"context"
	"io"
	"sync"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/iota-uz/iota-console/pkg/eventbus"
	"github.com/iota-uz/iota-console/pkg/excel"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/notify"
)

type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListReady
	ListError
)

func (s ListState) String() string {
	switch s {
	case ListIdle:
		return "idle"
	case ListLoading:
		return "loading"
	case ListReady:
		return "ready"
	case ListError:
		return "error"
	default:
		return "unknown"
	}
}

// Dependencies are the collaborators of a ListController. Only Repository
// is required.
type Dependencies[E any] struct {
	Repository Repository[E]
	Notifier   notify.Notifier
	Translator intl.Translator
	Confirmer  Confirmer
	EventBus   eventbus.EventBus
	Logger     *logrus.Logger
	Locale     language.Tag
}

// ListController owns the collection of one entity type, the criteria of
// its view and the form. The collection changes only after the repository
// confirmed a write. The mutex is never held while the repository works;
// results that arrive after Unmount are dropped.
type ListController[E any, S ~string] struct {
	schema   *Schema[E, S]
	repo     Repository[E]
	form     *FormController[E, S]
	engine   *FilterSort[E, S]
	notifier notify.Notifier
	tr       intl.Translator
	confirm  Confirmer
	bus      eventbus.EventBus
	log      *logrus.Entry

	life   context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    ListState
	closed   bool
	loadGen  uint64
	lastErr  error
	items    *Collection[E]
	criteria Criteria
	detail   *E
}

func NewListController[E any, S ~string](schema *Schema[E, S], deps Dependencies[E]) *ListController[E, S] {
	if deps.Notifier == nil {
		deps.Notifier = notify.Discard
	}
	if deps.Translator == nil {
		deps.Translator = intl.KeyTranslator{}
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.Locale == language.Und {
		deps.Locale = language.English
	}
	life, cancel := context.WithCancel(context.Background())
	return &ListController[E, S]{
		schema:   schema,
		repo:     deps.Repository,
		form:     NewFormController(schema, deps.Repository, deps.Notifier, deps.Translator, deps.Logger),
		engine:   NewFilterSort(schema, deps.Locale),
		notifier: deps.Notifier,
		tr:       deps.Translator,
		confirm:  deps.Confirmer,
		bus:      deps.EventBus,
		log:      deps.Logger.WithField("resource", schema.Resource),
		life:     life,
		cancel:   cancel,
		items:    NewCollection[E](),
	}
}

func (c *ListController[E, S]) Schema() *Schema[E, S] {
	return c.schema
}

// Form exposes the form for reading its state, draft and errors.
func (c *ListController[E, S]) Form() *FormController[E, S] {
	return c.form
}

func (c *ListController[E, S]) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the cause of the Error state.
func (c *ListController[E, S]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// FormOpen reports the Ready+FormOpen state.
func (c *ListController[E, S]) FormOpen() bool {
	return c.State() == ListReady && c.form.State() != FormClosed
}

// Mount issues the single initial list fetch.
func (c *ListController[E, S]) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.state != ListIdle {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mu.Unlock()
	return c.load(ctx)
}

// Retry re-enters Loading after a failed fetch.
func (c *ListController[E, S]) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.state != ListError {
		c.mu.Unlock()
		return ErrNotRetryable
	}
	c.mu.Unlock()
	return c.load(ctx)
}

// Unmount tears the controller down. In-flight calls are canceled and their
// results are never applied.
func (c *ListController[E, S]) Unmount() {
	c.mu.Lock()
	c.closed = true
	c.detail = nil
	c.mu.Unlock()

	c.cancel()
	c.form.Reset()
}

func (c *ListController[E, S]) load(ctx context.Context) error {
	c.mu.Lock()
	c.state = ListLoading
	c.lastErr = nil
	c.loadGen++
	generation := c.loadGen
	c.mu.Unlock()

	callCtx, done := c.callContext(ctx)
	items, err := c.repo.List(callCtx)
	done()

	var fx effects
	defer c.flush(&fx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || generation != c.loadGen {
		return ErrControllerClosed
	}

	c.items.Reset()
	if err != nil {
		c.state = ListError
		c.lastErr = err
		c.log.WithError(err).Error("failed to load list")
		fx.notify(c.tr.T(c.schema.key("Notifications.LoadFailed"), map[string]any{"Error": err.Error()}), notify.Error)
		fx.publish(&LoadFailedEvent{Resource: c.schema.Resource, Err: err})
		return errors.Wrapf(err, "list %s", c.schema.Resource)
	}

	skipped := 0
	for _, e := range items {
		id := c.schema.ID(e)
		if id == "" {
			skipped++
			continue
		}
		c.items.Put(id, c.schema.Guard(e))
	}
	if skipped > 0 {
		c.log.WithField("skipped", skipped).Warn("dropped records without an id")
	}
	c.state = ListReady
	c.log.WithField("count", c.items.Len()).Debug("list loaded")
	fx.publish(&ChangedEvent{Resource: c.schema.Resource, Op: OpLoad})
	return nil
}

// Items returns the collection in arrival order.
func (c *ListController[E, S]) Items() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Items()
}

func (c *ListController[E, S]) Get(id string) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Get(id)
}

// View is the filtered and sorted collection for the current criteria.
func (c *ListController[E, S]) View() []E {
	c.mu.Lock()
	items := c.items.Items()
	criteria := c.criteria
	c.mu.Unlock()
	return c.engine.View(items, criteria)
}

func (c *ListController[E, S]) Criteria() Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

func (c *ListController[E, S]) SetSearch(text string) {
	c.updateCriteria(func(cr Criteria) Criteria { return cr.WithSearch(text) })
}

func (c *ListController[E, S]) SetFilter(field, value string) {
	c.updateCriteria(func(cr Criteria) Criteria { return cr.WithFilter(field, value) })
}

// SetSort toggles direction when field is already active.
func (c *ListController[E, S]) SetSort(field string) {
	c.updateCriteria(func(cr Criteria) Criteria { return cr.WithSort(field) })
}

func (c *ListController[E, S]) SetCriteria(cr Criteria) {
	c.updateCriteria(func(Criteria) Criteria { return cr.normalized() })
}

func (c *ListController[E, S]) ResetCriteria() {
	c.updateCriteria(func(Criteria) Criteria { return Criteria{} })
}

func (c *ListController[E, S]) updateCriteria(fn func(Criteria) Criteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria = fn(c.criteria)
}

func (c *ListController[E, S]) OpenCreate() error {
	if err := c.ready(); err != nil {
		return err
	}
	c.CloseDetail()
	return c.form.OpenCreate()
}

func (c *ListController[E, S]) OpenEdit(id string) error {
	e, err := c.lookup(id)
	if err != nil {
		return err
	}
	c.CloseDetail()
	return c.form.OpenEdit(e)
}

// OpenView shows id read-only, in the detail panel when the schema asks for
// one and in the form otherwise.
func (c *ListController[E, S]) OpenView(id string) error {
	e, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !c.schema.DetailView {
		return c.form.OpenView(e)
	}
	if c.form.State() == FormSubmitting {
		return ErrFormBusy
	}
	c.form.Reset()
	guarded := c.schema.Guard(e)
	c.mu.Lock()
	c.detail = &guarded
	c.mu.Unlock()
	return nil
}

// Detail returns the entity shown in the detail panel.
func (c *ListController[E, S]) Detail() (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		var zero E
		return zero, false
	}
	return *c.detail, true
}

func (c *ListController[E, S]) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
}

// Close dismisses the form and the detail panel.
func (c *ListController[E, S]) Close() error {
	c.CloseDetail()
	return c.form.Cancel()
}

func (c *ListController[E, S]) Edit(fn func(*E)) error {
	return c.form.Edit(fn)
}

// Submit writes the draft and reconciles the confirmed record into the
// collection with the submitted status.
func (c *ListController[E, S]) Submit(ctx context.Context) (E, error) {
	var zero E
	if err := c.live(); err != nil {
		return zero, err
	}

	callCtx, done := c.callContext(ctx)
	out, err := c.form.Submit(callCtx)
	done()
	if err != nil {
		if errors.Is(err, ErrDiscarded) {
			return zero, ErrControllerClosed
		}
		return zero, err
	}

	var fx effects
	defer c.flush(&fx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return zero, ErrControllerClosed
	}
	id := c.schema.ID(out.Entity)
	entity := c.schema.Guard(out.Entity)
	c.items.Put(id, entity)

	key := "Notifications.Created"
	if out.Op == OpUpdate {
		key = "Notifications.Updated"
	}
	c.log.WithFields(logrus.Fields{"op": out.Op, "id": id}).Info("entity saved")
	fx.notify(c.tr.T(c.schema.key(key), nil), notify.Success)
	fx.publish(&ChangedEvent{Resource: c.schema.Resource, Op: out.Op, ID: id})
	return entity, nil
}

// Delete removes id after the Confirmer approved and the repository
// confirmed. On failure the collection is left as it was.
func (c *ListController[E, S]) Delete(ctx context.Context, id string) error {
	if _, err := c.lookup(id); err != nil {
		return err
	}
	prompt := c.tr.T(c.schema.key("Confirm.Delete"), map[string]any{"ID": id})
	if c.confirm == nil || !c.confirm.Confirm(ctx, prompt) {
		return ErrNotConfirmed
	}

	callCtx, done := c.callContext(ctx)
	err := c.repo.Delete(callCtx, id)
	done()

	var fx effects
	defer c.flush(&fx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrControllerClosed
	}
	logger := c.log.WithFields(logrus.Fields{"op": OpDelete, "id": id})
	if err != nil {
		logger.WithError(err).Warn("delete failed")
		fx.notify(c.tr.T(c.schema.key("Notifications.DeleteFailed"), map[string]any{"Error": err.Error()}), notify.Error)
		return errors.Wrapf(err, "delete %s %s", c.schema.Resource, id)
	}
	c.items.Remove(id)
	if c.detail != nil && c.schema.ID(*c.detail) == id {
		c.detail = nil
	}
	logger.Info("entity deleted")
	fx.notify(c.tr.T(c.schema.key("Notifications.Deleted"), nil), notify.Success)
	fx.publish(&ChangedEvent{Resource: c.schema.Resource, Op: OpDelete, ID: id})
	return nil
}

// Reload fetches id again and replaces the cached entry.
func (c *ListController[E, S]) Reload(ctx context.Context, id string) (E, error) {
	var zero E
	if err := c.ready(); err != nil {
		return zero, err
	}

	callCtx, done := c.callContext(ctx)
	e, err := c.repo.Get(callCtx, id)
	done()

	var fx effects
	defer c.flush(&fx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return zero, ErrControllerClosed
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{"op": OpReload, "id": id}).WithError(err).Warn("reload failed")
		fx.notify(c.tr.T(c.schema.key("Notifications.LoadFailed"), map[string]any{"Error": err.Error()}), notify.Error)
		return zero, errors.Wrapf(err, "get %s %s", c.schema.Resource, id)
	}
	if c.schema.ID(e) == "" && c.schema.SetID != nil {
		c.schema.SetID(&e, id)
	}
	e = c.schema.Guard(e)
	c.items.Put(id, e)
	fx.publish(&ChangedEvent{Resource: c.schema.Resource, Op: OpReload, ID: id})
	return e, nil
}

// Export writes the current view as an XLSX workbook to w.
func (c *ListController[E, S]) Export(ctx context.Context, w io.Writer) error {
	view := c.View()
	headers := make([]string, len(c.schema.Fields))
	for i, f := range c.schema.Fields {
		headers[i] = c.tr.T(f.LabelKey, nil)
	}
	rows := make([][]any, len(view))
	for i, e := range view {
		row := make([]any, len(c.schema.Fields))
		for j, f := range c.schema.Fields {
			if f.Numeric() {
				row[j] = f.Number(e).InexactFloat64()
			} else {
				row[j] = f.Text(e)
			}
		}
		rows[i] = row
	}

	sheet := c.tr.T(c.schema.key("Meta.Title"), nil)
	data, err := excel.NewExcelExporter(nil, nil).Export(ctx, excel.NewSliceDataSource(sheet, headers, rows))
	if err != nil {
		return errors.Wrapf(err, "export %s", c.schema.Resource)
	}
	_, err = w.Write(data)
	return err
}

func (c *ListController[E, S]) lookup(id string) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero E
	if err := c.readyLocked(); err != nil {
		return zero, err
	}
	e, ok := c.items.Get(id)
	if !ok {
		return zero, errors.Wrapf(ErrNotFound, "%s %s", c.schema.Resource, id)
	}
	return e, nil
}

func (c *ListController[E, S]) live() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrControllerClosed
	}
	return nil
}

func (c *ListController[E, S]) ready() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readyLocked()
}

func (c *ListController[E, S]) readyLocked() error {
	if c.closed {
		return ErrControllerClosed
	}
	if c.state != ListReady {
		return ErrNotReady
	}
	return nil
}

// callContext derives a context that is canceled by either the caller or
// Unmount.
func (c *ListController[E, S]) callContext(ctx context.Context) (context.Context, func()) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.life, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}

// effects collects notifications and events decided under the lock so they
// are delivered after it is released; subscribers may call back into the
// controller.
type effects struct {
	notes  []notification
	events []any
}

type notification struct {
	message  string
	severity notify.Severity
}

func (fx *effects) notify(message string, severity notify.Severity) {
	fx.notes = append(fx.notes, notification{message: message, severity: severity})
}

func (fx *effects) publish(event any) {
	fx.events = append(fx.events, event)
}

func (c *ListController[E, S]) flush(fx *effects) {
	for _, n := range fx.notes {
		c.notifier.Notify(n.message, n.severity)
	}
	if c.bus == nil {
		return
	}
	for _, e := range fx.events {
		c.bus.Publish(e)
	}
}
