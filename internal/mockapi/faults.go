package mockapi

import (
	"net/http"
	"sync"
	"time"
)

// Op names a backend operation a Fault can target.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Fault makes matching requests fail. Empty Resource or Op match anything.
// Times limits how often it fires; zero means until cleared.
type Fault struct {
	Resource string
	Op       Op
	Status   int
	Code     string
	Message  string
	// Delay is slept before answering, success or not.
	Delay time.Duration
	// Envelope answers HTTP 200 with success:false instead of Status.
	Envelope bool
	// RawBody replaces the JSON envelope, e.g. to simulate a proxy error page.
	RawBody string
	Times   int
}

func (f *Fault) matches(resource string, op Op) bool {
	return (f.Resource == "" || f.Resource == resource) && (f.Op == "" || f.Op == op)
}

func (f *Fault) status() int {
	if f.Envelope {
		return http.StatusOK
	}
	if f.Status == 0 {
		return http.StatusInternalServerError
	}
	return f.Status
}

type faults struct {
	mu    sync.Mutex
	items []*Fault
}

func (fs *faults) add(f Fault) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.items = append(fs.items, &f)
}

func (fs *faults) clear() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.items = nil
}

// take returns the first matching fault, consuming one use of it.
func (fs *faults) take(resource string, op Op) (Fault, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i, f := range fs.items {
		if !f.matches(resource, op) {
			continue
		}
		out := *f
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				fs.items = append(fs.items[:i], fs.items[i+1:]...)
			}
		}
		return out, true
	}
	return Fault{}, false
}
