package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		succeeded bool
		data      string
		message   string
	}{
		{name: "explicit success", body: `{"success":true,"data":[1,2]}`, succeeded: true, data: `[1,2]`},
		{name: "missing flag", body: `{"data":{"id":"1"}}`, succeeded: true, data: `{"id":"1"}`},
		{name: "failure", body: `{"success":false,"message":"nope"}`, succeeded: false, message: "nope"},
		{name: "empty body", body: ``, succeeded: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.succeeded, env.Succeeded())
			assert.Equal(t, tt.message, env.Message)
			if tt.data != "" {
				assert.JSONEq(t, tt.data, string(env.Data))
			}
		})
	}
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	t.Parallel()

	_, err := DecodeEnvelope([]byte(`<html>`))
	require.Error(t, err)
}

func TestWriteData(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, WriteData(rec, http.StatusCreated, map[string]string{"id": "7"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"7"}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, http.StatusNotFound, "NOT_FOUND", "client not found", nil))

	var got ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, got.Success)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, "client not found", got.Message)
}
