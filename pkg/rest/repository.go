// Package rest implements resource.Repository over the console's JSON REST
// backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/iota-uz/iota-console/pkg/httpapi"
	"github.com/iota-uz/iota-console/pkg/resource"
	"github.com/iota-uz/iota-console/pkg/session"
)

const maxBodySize = 8 << 20

var tracer = otel.Tracer("iota-console/rest")

// Codec converts between the wire record and the typed entity. Decode must
// tolerate missing fields; the status it returns is guarded again by the
// controllers.
type Codec[E any] interface {
	Decode(rec Record) E
	Encode(e E) map[string]any
}

type Options struct {
	// BaseURL is the backend origin; resources live under {BaseURL}/api.
	BaseURL    string
	HTTPClient *http.Client
	Session    session.Session
	Logger     *logrus.Logger
	Timeout    time.Duration
	// RequestIDHeader defaults to X-Request-ID.
	RequestIDHeader string
}

// Repository is a stateless HTTP client for one resource collection.
type Repository[E any] struct {
	resource        string
	codec           Codec[E]
	endpoint        *url.URL
	client          *http.Client
	session         session.Session
	logger          *logrus.Logger
	timeout         time.Duration
	requestIDHeader string
}

var _ resource.Repository[struct{}] = (*Repository[struct{}])(nil)

func NewRepository[E any](name string, codec Codec[E], opts Options) (*Repository[E], error) {
	if name == "" {
		return nil, errors.New("rest: resource name is required")
	}
	if codec == nil {
		return nil, errors.New("rest: codec is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "rest: parse base url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("rest: base url %q must be absolute", opts.BaseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	endpoint := base.JoinPath("api", name)

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	header := opts.RequestIDHeader
	if header == "" {
		header = "X-Request-ID"
	}
	return &Repository[E]{
		resource:        name,
		codec:           codec,
		endpoint:        endpoint,
		client:          client,
		session:         opts.Session,
		logger:          logger,
		timeout:         opts.Timeout,
		requestIDHeader: header,
	}, nil
}

func (r *Repository[E]) Resource() string {
	return r.resource
}

func (r *Repository[E]) List(ctx context.Context) ([]E, error) {
	data, status, err := r.do(ctx, "list", http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}
	records, skipped, ok := decodeList(data)
	if !ok {
		return nil, malformed(status, "list payload is not an array")
	}
	if skipped > 0 {
		r.logger.WithFields(logrus.Fields{
			"resource": r.resource,
			"skipped":  skipped,
		}).Warn("list response contained non-object elements")
	}
	out := make([]E, 0, len(records))
	for _, rec := range records {
		out = append(out, r.codec.Decode(rec))
	}
	return out, nil
}

func (r *Repository[E]) Get(ctx context.Context, id string) (E, error) {
	var zero E
	data, status, err := r.do(ctx, "get", http.MethodGet, id, nil)
	if err != nil {
		return zero, err
	}
	rec, ok := decodeRecord(data)
	if !ok {
		return zero, malformed(status, "record payload is not an object")
	}
	return r.codec.Decode(rec), nil
}

func (r *Repository[E]) Create(ctx context.Context, e E) (E, error) {
	var zero E
	data, status, err := r.do(ctx, "create", http.MethodPost, "", r.codec.Encode(e))
	if err != nil {
		return zero, err
	}
	rec, ok := decodeRecord(data)
	if !ok {
		return zero, malformed(status, "created record missing from response")
	}
	return r.codec.Decode(rec), nil
}

// Update sends the full entity. A response without a record echoes e.
func (r *Repository[E]) Update(ctx context.Context, id string, e E) (E, error) {
	var zero E
	data, _, err := r.do(ctx, "update", http.MethodPut, id, r.codec.Encode(e))
	if err != nil {
		return zero, err
	}
	rec, ok := decodeRecord(data)
	if !ok {
		return e, nil
	}
	return r.codec.Decode(rec), nil
}

func (r *Repository[E]) Delete(ctx context.Context, id string) error {
	_, _, err := r.do(ctx, "delete", http.MethodDelete, id, nil)
	return err
}

func malformed(status int, message string) error {
	return &ServerError{Status: status, Code: "malformed_response", Message: message}
}

func (r *Repository[E]) do(ctx context.Context, op, method, id string, payload any) (_ json.RawMessage, status int, err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "repository."+op, trace.WithAttributes(
		attribute.String("resource", r.resource),
		attribute.String("http.method", method),
	))
	defer func() {
		repositoryRequests.WithLabelValues(r.resource, op, outcomeOf(err)).Inc()
		repositoryLatency.WithLabelValues(r.resource, op).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	target := r.endpoint
	if id != "" {
		target = target.JoinPath(id)
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "rest: %s: encode body", op)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(r.requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	span.SetAttributes(attribute.String("request.id", requestID))

	log := r.logger.WithFields(logrus.Fields{
		"resource":   r.resource,
		"op":         op,
		"id":         id,
		"request-id": requestID,
	})
	log.Debug("repository request")

	resp, err := r.httpClient(ctx).Do(req)
	if err != nil {
		log.WithError(err).Warn("repository transport failure")
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Op: op, Err: err}
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized && r.session != nil {
		r.session.OnUnauthorized(ctx)
	}

	env, decodeErr := httpapi.DecodeEnvelope(raw)
	ok2xx := resp.StatusCode >= 200 && resp.StatusCode < 300
	switch {
	case decodeErr != nil && ok2xx:
		return nil, resp.StatusCode, malformed(resp.StatusCode, "response body is not an envelope")
	case decodeErr != nil:
		return nil, resp.StatusCode, &ServerError{Status: resp.StatusCode}
	case !ok2xx || !env.Succeeded():
		serr := &ServerError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
		log.WithError(serr).Warn("repository request rejected")
		return nil, resp.StatusCode, serr
	}
	log.WithField("status", resp.StatusCode).Debug("repository response")
	return env.Data, resp.StatusCode, nil
}

// httpClient layers the session's bearer token over the configured client.
// The token source is bound to ctx, so it is rebuilt per call.
func (r *Repository[E]) httpClient(ctx context.Context) *http.Client {
	if r.session == nil {
		return r.client
	}
	base := r.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c := *r.client
	c.Transport = &oauth2.Transport{
		Source: session.TokenSource(ctx, r.session),
		Base:   base,
	}
	return &c
}
