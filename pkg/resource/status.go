package resource

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// StatusSet is the closed set of legal status values of one entity type,
// with the member every unknown value is repaired to.
type StatusSet[S ~string] struct {
	members  []S
	index    map[string]S
	fallback S
}

// NewStatusSet panics when fallback is not one of members.
func NewStatusSet[S ~string](fallback S, members ...S) StatusSet[S] {
	set := StatusSet[S]{
		members:  append([]S(nil), members...),
		index:    make(map[string]S, len(members)),
		fallback: fallback,
	}
	for _, m := range members {
		set.index[canonicalStatus(string(m))] = m
	}
	if !set.Contains(fallback) {
		panic(fmt.Sprintf("resource: fallback status %q is not a member of %v", fallback, members))
	}
	return set
}

func (s StatusSet[S]) Members() []S {
	return append([]S(nil), s.members...)
}

func (s StatusSet[S]) Fallback() S {
	return s.fallback
}

func (s StatusSet[S]) Contains(v S) bool {
	m, ok := s.index[canonicalStatus(string(v))]
	return ok && m == v
}

// Normalize maps any value to a member. Strings match case-insensitively
// with spaces and hyphens read as underscores; everything else becomes the
// fallback. It never fails and Normalize(Normalize(x)) == Normalize(x).
func (s StatusSet[S]) Normalize(raw any) S {
	text, ok := statusText(raw)
	if !ok {
		return s.fallback
	}
	if m, found := s.index[canonicalStatus(text)]; found {
		return m
	}
	return s.fallback
}

// Normalize is the free-standing form of StatusSet.Normalize. When fallback
// is not in legal the first legal value is used.
func Normalize[S ~string](raw any, legal []S, fallback S) S {
	if len(legal) == 0 {
		return fallback
	}
	for _, m := range legal {
		if m == fallback {
			return NewStatusSet(fallback, legal...).Normalize(raw)
		}
	}
	return NewStatusSet(legal[0], legal...).Normalize(raw)
}

func canonicalStatus(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, v)
}

func statusText(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s, true
		}
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Ptr:
		if rv.IsNil() {
			return "", false
		}
		return statusText(rv.Elem().Interface())
	default:
		return "", false
	}
}
