package rest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one untyped JSON object from a response body. Its accessors
// never fail: missing, null and mistyped values read as the zero value of
// the requested type.
type Record map[string]any

// ID reads "id", falling back to "_id". Numeric ids are rendered without
// exponent or fraction.
func (r Record) ID() string {
	if id := r.String("id"); id != "" {
		return id
	}
	return r.String("_id")
}

// Raw returns the value under the first present key.
func (r Record) Raw(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// String reads the first present key as text.
func (r Record) String(keys ...string) string {
	switch v := r.Raw(keys...).(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int reads the first present key as an integer. Numeric strings are
// accepted; fractions are truncated.
func (r Record) Int(keys ...string) int {
	return int(r.Decimal(keys...).IntPart())
}

// Decimal reads the first present key as an exact decimal.
func (r Record) Decimal(keys ...string) decimal.Decimal {
	switch v := r.Raw(keys...).(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly}

// Time reads the first present key as an RFC 3339 timestamp or a plain date.
// Numbers are taken as unix seconds.
func (r Record) Time(keys ...string) time.Time {
	switch v := r.Raw(keys...).(type) {
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	case json.Number, float64:
		if secs := r.Decimal(keys...).IntPart(); secs > 0 {
			return time.Unix(secs, 0).UTC()
		}
	}
	return time.Time{}
}

// Date reads the first present key as a calendar day (YYYY-MM-DD). A
// timestamp keeps the day of its own offset. Unparseable values read as "".
func (r Record) Date(keys ...string) string {
	v, ok := r.Raw(keys...).(string)
	if !ok {
		return ""
	}
	s := strings.TrimSpace(v)
	if len(s) >= len(time.DateOnly) {
		if d, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return d.Format(time.DateOnly)
		}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}

// decodeRecord turns raw JSON into a Record; anything but an object yields
// ok=false.
func decodeRecord(raw json.RawMessage) (Record, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var rec Record
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil || rec == nil {
		return nil, false
	}
	return rec, true
}

// decodeList accepts a bare array or an object wrapping one under items,
// data or results. Elements that are not objects are skipped and counted.
func decodeList(raw json.RawMessage) (records []Record, skipped int, ok bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, 0, true
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, 0, false
		}
		for _, key := range []string{"items", "data", "results"} {
			if inner, exists := wrapper[key]; exists {
				return decodeList(inner)
			}
		}
		return nil, 0, false
	}
	records = make([]Record, 0, len(elems))
	for _, e := range elems {
		rec, isObject := decodeRecord(e)
		if !isObject {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, true
}
