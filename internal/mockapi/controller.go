package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-console/pkg/composables"
	"github.com/iota-uz/iota-console/pkg/httpapi"
	"github.com/iota-uz/iota-console/pkg/intl"
)

const maxBodyBytes = 1 << 20

type Options struct {
	// ListWrapper, when set, wraps list payloads as {<wrapper>: [...], "total": n}
	// instead of a bare array.
	ListWrapper string
	Logger      *logrus.Logger
}

// Controller serves /api/{resource}[/{id}] from a Store.
type Controller struct {
	store  *Store
	opts   Options
	faults faults
}

func NewController(store *Store, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Controller{store: store, opts: opts}
}

func (c *Controller) Key() string {
	return "/api"
}

func (c *Controller) Register(r *mux.Router) {
	router := r.PathPrefix("/api").Subrouter()
	router.HandleFunc("/{resource}", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{resource}", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{resource}/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{resource}/{id}", c.Update).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc("/{resource}/{id}", c.Delete).Methods(http.MethodDelete)
}

// InjectFault makes subsequent matching requests fail.
func (c *Controller) InjectFault(f Fault) {
	c.faults.add(f)
}

func (c *Controller) ClearFaults() {
	c.faults.clear()
}

func (c *Controller) Store() *Store {
	return c.store
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	resource, ok := c.begin(w, r, OpList)
	if !ok {
		return
	}
	records, err := c.store.List(resource)
	if err != nil {
		c.writeStoreError(w, r, err)
		return
	}
	if c.opts.ListWrapper != "" {
		_ = httpapi.WriteData(w, http.StatusOK, map[string]any{
			c.opts.ListWrapper: records,
			"total":            len(records),
		})
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, records)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	resource, ok := c.begin(w, r, OpGet)
	if !ok {
		return
	}
	rec, err := c.store.Get(resource, mux.Vars(r)["id"])
	if err != nil {
		c.writeStoreError(w, r, err)
		return
	}
	_ = httpapi.WriteData(w, http.StatusOK, rec)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	resource, ok := c.begin(w, r, OpCreate)
	if !ok {
		return
	}
	_, rec, ok := c.readObject(w, r)
	if !ok {
		return
	}
	created, err := c.store.Create(resource, rec)
	if err != nil {
		c.writeStoreError(w, r, err)
		return
	}
	c.logger(r).WithFields(logrus.Fields{"resource": resource, "id": created["id"]}).Info("record created")
	_ = httpapi.WriteData(w, http.StatusCreated, created)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	resource, ok := c.begin(w, r, OpUpdate)
	if !ok {
		return
	}
	body, _, ok := c.readObject(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	updated, err := c.store.Update(resource, id, body)
	if err != nil {
		c.writeStoreError(w, r, err)
		return
	}
	c.logger(r).WithFields(logrus.Fields{"resource": resource, "id": id}).Info("record updated")
	_ = httpapi.WriteData(w, http.StatusOK, updated)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	resource, ok := c.begin(w, r, OpDelete)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := c.store.Delete(resource, id); err != nil {
		c.writeStoreError(w, r, err)
		return
	}
	c.logger(r).WithFields(logrus.Fields{"resource": resource, "id": id}).Info("record deleted")
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// begin resolves the resource and applies any injected fault. It reports
// false once a response has been written.
func (c *Controller) begin(w http.ResponseWriter, r *http.Request, op Op) (string, bool) {
	resource := mux.Vars(r)["resource"]
	if !c.store.HasResource(resource) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "UNKNOWN_RESOURCE",
			translate(r.Context(), "Common.Errors.UnknownResource", map[string]any{"Resource": resource}, "unknown resource: "+resource),
			map[string]string{"path": r.URL.Path})
		return "", false
	}
	f, hit := c.faults.take(resource, op)
	if !hit {
		return resource, true
	}
	if f.Delay > 0 {
		if err := sleep(r.Context(), f.Delay); err != nil {
			return "", false
		}
		if f.Status == 0 && f.Code == "" && f.RawBody == "" && !f.Envelope {
			return resource, true
		}
	}
	c.logger(r).WithFields(logrus.Fields{"resource": resource, "op": op, "status": f.status()}).Warn("injected fault")
	if f.RawBody != "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(f.status())
		_, _ = io.WriteString(w, f.RawBody)
		return "", false
	}
	code := f.Code
	if code == "" {
		code = "INJECTED_FAULT"
	}
	message := f.Message
	if message == "" {
		message = http.StatusText(f.status())
	}
	_ = httpapi.WriteError(w, f.status(), code, message, nil)
	return "", false
}

func (c *Controller) readObject(w http.ResponseWriter, r *http.Request) ([]byte, Record, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		c.writeInvalidBody(w, r)
		return nil, nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil || rec == nil {
		c.writeInvalidBody(w, r)
		return nil, nil, false
	}
	return body, rec, true
}

func (c *Controller) writeInvalidBody(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY",
		translate(r.Context(), "Common.Errors.InvalidBody", nil, "the request body must be a JSON object"), nil)
}

func (c *Controller) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	vars := mux.Vars(r)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			translate(r.Context(), "Common.Errors.RecordNotFound",
				map[string]any{"Resource": vars["resource"], "ID": vars["id"]},
				"no "+vars["resource"]+" record with id "+vars["id"]), nil)
	case errors.Is(err, ErrInvalidRecord):
		c.writeInvalidBody(w, r)
	case errors.Is(err, ErrUnknownResource):
		_ = httpapi.WriteError(w, http.StatusNotFound, "UNKNOWN_RESOURCE", err.Error(), nil)
	default:
		c.logger(r).WithError(err).Error("store failure")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Error(), nil)
	}
}

func (c *Controller) logger(r *http.Request) *logrus.Entry {
	if l, err := composables.TryUseLogger(r.Context()); err == nil {
		return l
	}
	return logrus.NewEntry(c.opts.Logger)
}

// NotFound answers unmatched routes with a JSON envelope.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := map[string]string{"path": r.URL.Path}
		if id, ok := composables.UseRequestID(r.Context()); ok {
			meta["request_id"] = id
		}
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			translate(r.Context(), "Common.Errors.NotFound", nil, "not found"), meta)
	}
}

func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := map[string]string{"path": r.URL.Path, "method": r.Method}
		if id, ok := composables.UseRequestID(r.Context()); ok {
			meta["request_id"] = id
		}
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			translate(r.Context(), "Common.Errors.MethodNotAllowed", nil, "method not allowed"), meta)
	}
}

// translate localizes key with the request localizer, falling back to
// fallback when there is none or the key is missing.
func translate(ctx context.Context, key string, params map[string]any, fallback string) string {
	l, ok := intl.UseLocalizer(ctx)
	if !ok {
		return fallback
	}
	if msg := intl.NewTranslator(l).T(key, params); msg != key && strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
