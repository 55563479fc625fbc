package resource_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-console/pkg/resource"
)

func TestCriteria_WithSort(t *testing.T) {
	t.Parallel()

	var c resource.Criteria
	c = c.WithSort("name")
	assert.Equal(t, "name", c.SortField)
	assert.Equal(t, resource.Asc, c.Direction())

	c = c.WithSort("name")
	assert.Equal(t, resource.Desc, c.Direction(), "reselecting toggles")

	c = c.WithSort("name")
	assert.Equal(t, resource.Asc, c.Direction())

	c = c.WithSort("name").WithSort("email")
	assert.Equal(t, "email", c.SortField)
	assert.Equal(t, resource.Asc, c.Direction(), "a different field resets to ascending")
}

func TestCriteria_WithFilter(t *testing.T) {
	t.Parallel()

	base := resource.Criteria{}.WithFilter("status", "active")
	assert.Equal(t, "active", base.Filter("status"))

	cleared := base.WithFilter("status", resource.FilterAll)
	assert.Equal(t, resource.FilterAll, cleared.Filter("status"))
	assert.Equal(t, "active", base.Filter("status"), "criteria are values; the original is unchanged")

	assert.Equal(t, resource.FilterAll, base.WithFilter("status", "").Filter("status"))
	assert.Equal(t, resource.FilterAll, resource.Criteria{Filters: map[string]string{"status": "ALL"}}.Filter("status"))
}

func TestCriteria_Values(t *testing.T) {
	t.Parallel()

	c := resource.Criteria{
		SearchText:    " ann ",
		Filters:       map[string]string{"status": "active", "role": resource.FilterAll},
		SortField:     "name",
		SortDirection: resource.Desc,
	}
	values, err := c.Values()
	require.NoError(t, err)

	assert.Equal(t, "ann", values.Get("q"))
	assert.Equal(t, "active", values.Get("filter[status]"))
	assert.False(t, values.Has("filter[role]"))
	assert.Equal(t, "name", values.Get("sort"))
	assert.Equal(t, "desc", values.Get("dir"))
}

func TestParseCriteria(t *testing.T) {
	t.Parallel()

	c, err := resource.ParseCriteria(url.Values{
		"q":              {"  ann"},
		"filter[status]": {"inactive"},
		"filter[role]":   {"all"},
		"sort":           {"email"},
		"dir":            {"DESC"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ann", c.SearchText)
	assert.Equal(t, map[string]string{"status": "inactive"}, c.Filters)
	assert.Equal(t, "email", c.SortField)
	assert.Equal(t, resource.Desc, c.Direction())

	empty, err := resource.ParseCriteria(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, resource.Criteria{}, empty)
}
