// Package session provides the auth collaborator injected into repositories.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Session supplies bearer tokens and is told when the backend rejects one.
type Session interface {
	Token(ctx context.Context) (string, error)
	OnUnauthorized(ctx context.Context)
}

var ErrNoToken = errors.New("session has no token")

type static struct {
	token          string
	onUnauthorized func(ctx context.Context)
}

// NewStatic returns a session with a fixed token. onUnauthorized may be nil.
func NewStatic(token string, onUnauthorized func(ctx context.Context)) Session {
	return &static{token: token, onUnauthorized: onUnauthorized}
}

func (s *static) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *static) OnUnauthorized(ctx context.Context) {
	if s.onUnauthorized != nil {
		s.onUnauthorized(ctx)
	}
}

// LoginFunc obtains a fresh token from the identity provider.
type LoginFunc func(ctx context.Context) (string, error)

const (
	maxRetries = 3
	baseDelay  = time.Second
)

// Refreshing caches the token returned by login and logs in again after the
// backend answers 401.
type Refreshing struct {
	login     LoginFunc
	baseDelay time.Duration
	expired   func(ctx context.Context)

	mu    sync.Mutex
	token string
}

type RefreshingOption func(*Refreshing)

// WithRetryDelay overrides the linear backoff step between login attempts.
func WithRetryDelay(d time.Duration) RefreshingOption {
	return func(r *Refreshing) {
		r.baseDelay = d
	}
}

// WithExpiredHook is called after a rejected token has been dropped.
func WithExpiredHook(fn func(ctx context.Context)) RefreshingOption {
	return func(r *Refreshing) {
		r.expired = fn
	}
}

func NewRefreshing(login LoginFunc, opts ...RefreshingOption) *Refreshing {
	r := &Refreshing{login: login, baseDelay: baseDelay}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Refreshing) CurrentToken() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

func (r *Refreshing) Token(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token != "" {
		return r.token, nil
	}
	return r.refreshLocked(ctx)
}

func (r *Refreshing) OnUnauthorized(ctx context.Context) {
	r.mu.Lock()
	r.token = ""
	r.mu.Unlock()

	if r.expired != nil {
		r.expired(ctx)
	}
}

func (r *Refreshing) refreshLocked(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", errors.New("context cannot be nil")
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * r.baseDelay):
			}
		}

		token, err := r.login(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if token == "" {
			lastErr = ErrNoToken
			continue
		}

		r.token = token
		return token, nil
	}

	return "", lastErr
}

type tokenSource struct {
	ctx     context.Context
	session Session
}

// TokenSource adapts s to oauth2 so an oauth2.Transport can attach the
// bearer header. ctx bounds every token lookup.
func TokenSource(ctx context.Context, s Session) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, session: s}
}

func (t *tokenSource) Token() (*oauth2.Token, error) {
	token, err := t.session.Token(t.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
