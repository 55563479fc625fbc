package resource

import (
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/form"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FilterAll is the filter value meaning "no constraint".
const FilterAll = "all"

// Criteria is the transient filter and sort state of a list view. The zero
// value matches everything in collection order.
type Criteria struct {
	SearchText    string            `form:"q,omitempty"`
	Filters       map[string]string `form:"filter,omitempty"`
	SortField     string            `form:"sort,omitempty"`
	SortDirection Direction         `form:"dir,omitempty"`
}

var (
	criteriaDecoder = form.NewDecoder()
	criteriaEncoder = form.NewEncoder()
)

// ParseCriteria reads criteria from query values such as
// q=ann&filter[status]=active&sort=name&dir=desc.
func ParseCriteria(values url.Values) (Criteria, error) {
	var c Criteria
	if err := criteriaDecoder.Decode(&c, values); err != nil {
		return Criteria{}, errors.Wrap(err, "decode criteria")
	}
	return c.normalized(), nil
}

// Values encodes c for a URL query. Empty parts are omitted.
func (c Criteria) Values() (url.Values, error) {
	values, err := criteriaEncoder.Encode(c.normalized())
	if err != nil {
		return nil, errors.Wrap(err, "encode criteria")
	}
	return values, nil
}

// WithSort selects field. Reselecting the active field flips the direction;
// a different field starts ascending.
func (c Criteria) WithSort(field string) Criteria {
	c.Filters = c.cloneFilters()
	if field != "" && field == c.SortField {
		if c.Direction() == Desc {
			c.SortDirection = Asc
		} else {
			c.SortDirection = Desc
		}
		return c
	}
	c.SortField = field
	c.SortDirection = Asc
	return c
}

func (c Criteria) WithSearch(text string) Criteria {
	c.Filters = c.cloneFilters()
	c.SearchText = text
	return c
}

// WithFilter constrains field to value; FilterAll or "" removes the constraint.
func (c Criteria) WithFilter(field, value string) Criteria {
	c.Filters = c.cloneFilters()
	if isUnconstrained(value) {
		delete(c.Filters, field)
		return c
	}
	if c.Filters == nil {
		c.Filters = make(map[string]string)
	}
	c.Filters[field] = value
	return c
}

// Filter returns the active constraint on field, or FilterAll.
func (c Criteria) Filter(field string) string {
	if v, ok := c.Filters[field]; ok && !isUnconstrained(v) {
		return v
	}
	return FilterAll
}

func (c Criteria) Direction() Direction {
	if strings.EqualFold(strings.TrimSpace(string(c.SortDirection)), string(Desc)) {
		return Desc
	}
	return Asc
}

func (c Criteria) cloneFilters() map[string]string {
	if len(c.Filters) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Filters))
	for k, v := range c.Filters {
		out[k] = v
	}
	return out
}

func (c Criteria) normalized() Criteria {
	out := Criteria{
		SearchText: strings.TrimSpace(c.SearchText),
		SortField:  strings.TrimSpace(c.SortField),
	}
	for k, v := range c.Filters {
		if isUnconstrained(v) {
			continue
		}
		if out.Filters == nil {
			out.Filters = make(map[string]string)
		}
		out.Filters[k] = v
	}
	if out.SortField != "" {
		out.SortDirection = c.Direction()
	}
	return out
}

func isUnconstrained(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, FilterAll)
}
