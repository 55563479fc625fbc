package rest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Accessors(t *testing.T) {
	t.Parallel()

	rec, ok := decodeRecord(json.RawMessage(`{
		"_id": 12345678901,
		"name": "  Anna ",
		"age": "41",
		"hours": 2.50,
		"price": "19.99",
		"flag": true,
		"missing": null,
		"nested": {"a": 1}
	}`))
	require.True(t, ok)

	assert.Equal(t, "12345678901", rec.ID())
	assert.Equal(t, "Anna", rec.String("name"))
	assert.Equal(t, 41, rec.Int("age"))
	assert.True(t, decimal.RequireFromString("2.5").Equal(rec.Decimal("hours")))
	assert.True(t, decimal.RequireFromString("19.99").Equal(rec.Decimal("price")))
	assert.Equal(t, "true", rec.String("flag"))
	assert.Equal(t, "", rec.String("missing"))
	assert.Equal(t, "", rec.String("nested"))
	assert.Equal(t, 0, rec.Int("name"))
	assert.Equal(t, "Anna", rec.String("title", "name"), "first present key wins")
}

func TestRecord_IDPrefersID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", Record{"id": "a", "_id": "b"}.ID())
	assert.Equal(t, "b", Record{"id": "", "_id": "b"}.ID())
	assert.Equal(t, "", Record{}.ID())
}

func TestDecodeRecord_RejectsNonObjects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{``, `null`, `[]`, `"x"`, `3`} {
		_, ok := decodeRecord(json.RawMessage(in))
		assert.False(t, ok, in)
	}
}

func TestDecodeList_Wrappers(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"items", "data", "results"} {
		recs, skipped, ok := decodeList(json.RawMessage(`{"` + key + `":[{"id":1},2]}`))
		require.True(t, ok, key)
		assert.Equal(t, 1, skipped)
		require.Len(t, recs, 1)
		assert.Equal(t, "1", recs[0].ID())
	}

	_, _, ok := decodeList(json.RawMessage(`{"rows":[]}`))
	assert.False(t, ok)
}

func TestRecord_Time(t *testing.T) {
	t.Parallel()

	rec := Record{
		"iso":   "2024-03-01T10:20:30+02:00",
		"date":  "2024-03-01",
		"unix":  json.Number("1700000000"),
		"bogus": "yesterday",
	}
	assert.Equal(t, time.Date(2024, 3, 1, 8, 20, 30, 0, time.UTC), rec.Time("iso"))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rec.Time("date"))
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), rec.Time("unix"))
	assert.True(t, rec.Time("bogus").IsZero())
	assert.True(t, rec.Time("missing").IsZero())
}

func TestRecord_DateKeepsCalendarDay(t *testing.T) {
	t.Parallel()

	rec := Record{
		"east":  "2025-01-15T00:00:00+05:00",
		"west":  "2025-01-15T23:30:00-08:00",
		"plain": " 2025-01-15 ",
		"space": "2025-01-15 09:00:00",
		"bogus": "soon",
		"num":   json.Number("20250115"),
	}
	assert.Equal(t, "2025-01-15", rec.Date("east"))
	assert.Equal(t, "2025-01-15", rec.Date("west"))
	assert.Equal(t, "2025-01-15", rec.Date("plain"))
	assert.Equal(t, "2025-01-15", rec.Date("space"))
	assert.Empty(t, rec.Date("bogus"))
	assert.Empty(t, rec.Date("num"))
	assert.Empty(t, rec.Date("missing"))
}
