package resource

import (
	"bytes"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterSort derives the visible slice of a collection from Criteria. View
// is pure: the input is never modified and equal inputs give equal output.
type FilterSort[E any, S ~string] struct {
	schema *Schema[E, S]
	locale language.Tag
}

func NewFilterSort[E any, S ~string](schema *Schema[E, S], locale language.Tag) *FilterSort[E, S] {
	return &FilterSort[E, S]{schema: schema, locale: locale}
}

func (f *FilterSort[E, S]) Locale() language.Tag {
	return f.locale
}

func (f *FilterSort[E, S]) View(items []E, c Criteria) []E {
	match := f.matcher(c)
	out := make([]E, 0, len(items))
	for _, e := range items {
		if match(e) {
			out = append(out, e)
		}
	}

	field, ok := f.schema.Field(strings.TrimSpace(c.SortField))
	if !ok {
		return out
	}
	if field.Numeric() {
		sortByNumber(out, field, c.Direction())
	} else {
		f.sortByText(out, field, c.Direction())
	}
	return out
}

func (f *FilterSort[E, S]) matcher(c Criteria) func(E) bool {
	type constraint struct {
		field Field[E]
		value string
	}
	var constraints []constraint
	for _, name := range f.schema.Filters {
		value := c.Filter(name)
		if value == FilterAll {
			continue
		}
		field, ok := f.schema.Field(name)
		if !ok {
			continue
		}
		if name == StatusField {
			value = canonicalStatus(value)
		}
		constraints = append(constraints, constraint{field: field, value: value})
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(c.SearchText))
	var searchable []Field[E]
	if needle != "" {
		for _, name := range f.schema.Search {
			if field, ok := f.schema.Field(name); ok {
				searchable = append(searchable, field)
			}
		}
	}

	return func(e E) bool {
		for _, k := range constraints {
			if k.field.Text(e) != k.value {
				return false
			}
		}
		if needle == "" {
			return true
		}
		for _, field := range searchable {
			if strings.Contains(fold.String(field.Text(e)), needle) {
				return true
			}
		}
		return false
	}
}

func (f *FilterSort[E, S]) sortByText(items []E, field Field[E], dir Direction) {
	col := collate.New(f.locale)
	var buf collate.Buffer
	type keyed struct {
		key []byte
		e   E
	}
	rows := make([]keyed, len(items))
	for i, e := range items {
		rows[i] = keyed{key: append([]byte(nil), col.KeyFromString(&buf, field.Text(e))...), e: e}
		buf.Reset()
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		if dir == Desc {
			return bytes.Compare(b.key, a.key)
		}
		return bytes.Compare(a.key, b.key)
	})
	for i := range rows {
		items[i] = rows[i].e
	}
}

func sortByNumber[E any](items []E, field Field[E], dir Direction) {
	type keyed struct {
		key decimal.Decimal
		e   E
	}
	rows := make([]keyed, len(items))
	for i, e := range items {
		rows[i] = keyed{key: field.Number(e), e: e}
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		if dir == Desc {
			return b.key.Cmp(a.key)
		}
		return a.key.Cmp(b.key)
	})
	for i := range rows {
		items[i] = rows[i].e
	}
}
