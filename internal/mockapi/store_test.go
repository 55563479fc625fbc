package mockapi

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	s := NewStore("clients")
	n := 0
	s.newID = func() string {
		n++
		return "gen-" + string(rune('0'+n))
	}
	s.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.FixedZone("X", 3600)) }
	return s
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i], _ = r["id"].(string)
	}
	return out
}

func TestStore_CreateAssignsIDAndKeepsOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	a, err := s.Create("clients", Record{"id": "client-chosen", "_id": "x", "name": "A"})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", a["id"])
	assert.NotContains(t, a, "_id")
	assert.Equal(t, "2024-06-01T08:00:00Z", a["created_at"])

	_, err = s.Create("clients", Record{"name": "B", "created_at": "2020-01-01T00:00:00Z"})
	require.NoError(t, err)

	got, err := s.List("clients")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-1", "gen-2"}, ids(got))
	assert.Equal(t, "2020-01-01T00:00:00Z", got[1]["created_at"])
}

func TestStore_UpdateMergesPatch(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	_, err := s.Insert("clients", Record{"id": "c1", "name": "Acme", "phone": "+1", "status": "active"})
	require.NoError(t, err)
	_, err = s.Insert("clients", Record{"id": "c2", "name": "Globex"})
	require.NoError(t, err)

	got, err := s.Update("clients", "c1", []byte(`{"id":"other","status":"inactive","phone":null}`))
	require.NoError(t, err)
	assert.Equal(t, "c1", got["id"])
	assert.Equal(t, "Acme", got["name"])
	assert.Equal(t, "inactive", got["status"])
	assert.NotContains(t, got, "phone")

	all, err := s.List("clients")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids(all), "update keeps the position")
}

func TestStore_Errors(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	_, err := s.List("planets")
	require.ErrorIs(t, err, ErrUnknownResource)

	_, err = s.Get("clients", "missing")
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.Update("clients", "missing", []byte(`{}`))
	require.ErrorIs(t, err, ErrRecordNotFound)

	require.ErrorIs(t, s.Delete("clients", "missing"), ErrRecordNotFound)

	_, err = s.Insert("clients", Record{"id": "c1"})
	require.NoError(t, err)
	_, err = s.Update("clients", "c1", []byte(`[1,2]`))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestStore_DeleteRemovesFromOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Insert("clients", Record{"id": id})
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete("clients", "b"))

	all, err := s.List("clients")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(all))
	assert.Equal(t, 2, s.Len("clients"))
}

func TestStore_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	_, err := s.Insert("clients", Record{"id": "a", "name": "A"})
	require.NoError(t, err)

	all, err := s.List("clients")
	require.NoError(t, err)
	all[0]["name"] = "mutated"

	got, err := s.Get("clients", "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got["name"])
}

func TestSeedFromFixtures(t *testing.T) {
	t.Parallel()

	fixtures, err := ParseFixtures(strings.NewReader(`
clients:
  - id: c1
    name: Acme
  - _id: 17
    name: Initech
    status: on hold
`))
	require.NoError(t, err)

	s := newTestStore()
	require.NoError(t, s.Seed(fixtures))

	all, err := s.List("clients")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "17"}, ids(all))
	assert.Equal(t, "on hold", all[1]["status"], "fixtures are stored verbatim")

	err = s.Seed(Fixtures{"planets": {{"id": "p1"}}})
	require.ErrorIs(t, err, ErrUnknownResource)
}

func TestParseFixtures_Empty(t *testing.T) {
	t.Parallel()

	got, err := ParseFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadFixtures_File(t *testing.T) {
	t.Parallel()

	got, err := LoadFixtures("testdata/seed.yaml")
	require.NoError(t, err)
	assert.Len(t, got["clients"], 3)
	assert.Len(t, got["organizations"], 2)
	assert.Len(t, got["tasks"], 3)
	assert.Len(t, got["users"], 2)
}

func TestFaults_TakeConsumes(t *testing.T) {
	t.Parallel()

	var fs faults
	fs.add(Fault{Resource: "clients", Op: OpDelete, Status: 409, Times: 1})
	fs.add(Fault{Op: OpList, Status: 503})

	_, hit := fs.take("tasks", OpDelete)
	assert.False(t, hit)

	f, hit := fs.take("clients", OpDelete)
	require.True(t, hit)
	assert.Equal(t, 409, f.status())
	_, hit = fs.take("clients", OpDelete)
	assert.False(t, hit, "single use faults are consumed")

	for range 3 {
		f, hit = fs.take("users", OpList)
		require.True(t, hit)
		assert.Equal(t, 503, f.status())
	}
	fs.clear()
	_, hit = fs.take("users", OpList)
	assert.False(t, hit)
}
