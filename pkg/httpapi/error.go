package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape of every response on the REST boundary:
// {success, data, message}. Failures also carry a machine readable code.
type Envelope struct {
	Success *bool             `json:"success,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Succeeded reports whether the envelope signals success. A missing success
// flag counts as success; the HTTP status decides in that case.
func (e *Envelope) Succeeded() bool {
	return e.Success == nil || *e.Success
}

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type successEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeEnvelope parses body. An empty body yields an empty envelope.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	env := &Envelope{}
	if len(body) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, env); err != nil {
		return nil, err
	}
	return env, nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteData writes {success: true, data: data}.
func WriteData(w http.ResponseWriter, status int, data any) error {
	return WriteJSON(w, status, &successEnvelope{Success: true, Data: data})
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Success: false,
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
