package mockapi

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/evanphx/json-patch/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidRecord   = errors.New("record must be a JSON object")
)

// Record is one stored JSON object. The store is schema-less: it keeps
// whatever fields clients send, malformed statuses included.
type Record map[string]any

type table struct {
	order []string
	rows  map[string]Record
}

// Store is an in-memory, insertion-ordered collection of records per
// resource. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
	now    func() time.Time
	newID  func() string
}

func NewStore(resources ...string) *Store {
	s := &Store{
		tables: make(map[string]*table, len(resources)),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, r := range resources {
		s.tables[r] = &table{rows: make(map[string]Record)}
	}
	return s
}

func (s *Store) table(resource string) (*table, error) {
	t, ok := s.tables[resource]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownResource, "%q", resource)
	}
	return t, nil
}

// HasResource reports whether resource is served.
func (s *Store) HasResource(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[resource]
	return ok
}

func (s *Store) List(resource string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, clone(t.rows[id]))
	}
	return out, nil
}

func (s *Store) Get(resource, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	rec, ok := t.rows[id]
	if !ok {
		return nil, errors.Wrapf(ErrRecordNotFound, "%s/%s", resource, id)
	}
	return clone(rec), nil
}

// Create stores rec under a fresh id, ignoring any id the client sent, and
// stamps created_at when missing.
func (s *Store) Create(resource string, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	rec = clone(rec)
	delete(rec, "_id")
	id := s.newID()
	rec["id"] = id
	if v, ok := rec["created_at"]; !ok || v == nil || v == "" {
		rec["created_at"] = s.now().UTC().Format(time.RFC3339)
	}
	t.order = append(t.order, id)
	t.rows[id] = rec
	return clone(rec), nil
}

// Insert stores rec as-is, keeping its id. Used for seeding.
func (s *Store) Insert(resource string, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	rec = clone(rec)
	id := recordID(rec)
	if id == "" {
		id = s.newID()
	}
	rec["id"] = id
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = rec
	return clone(rec), nil
}

// Update merges patch into the stored record following RFC 7396: fields
// set to null are removed, absent fields are kept.
func (s *Store) Update(resource, id string, patch []byte) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(resource)
	if err != nil {
		return nil, err
	}
	current, ok := t.rows[id]
	if !ok {
		return nil, errors.Wrapf(ErrRecordNotFound, "%s/%s", resource, id)
	}
	original, err := json.Marshal(current)
	if err != nil {
		return nil, errors.Wrap(err, "marshal stored record")
	}
	merged, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidRecord, err.Error())
	}
	next := Record{}
	if err := json.Unmarshal(merged, &next); err != nil {
		return nil, errors.Wrap(ErrInvalidRecord, err.Error())
	}
	delete(next, "_id")
	next["id"] = id
	t.rows[id] = next
	return clone(next), nil
}

func (s *Store) Delete(resource, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(resource)
	if err != nil {
		return err
	}
	if _, ok := t.rows[id]; !ok {
		return errors.Wrapf(ErrRecordNotFound, "%s/%s", resource, id)
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Len(resource string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tables[resource]; ok {
		return len(t.order)
	}
	return 0
}

func recordID(rec Record) string {
	for _, key := range []string{"id", "_id"} {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case int:
			return fmt.Sprint(v)
		case float64:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// clone copies the top level; nested values are shared but the store never
// mutates them in place.
func clone(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
