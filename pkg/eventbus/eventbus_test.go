package eventbus

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type created struct {
	id string
}

type deleted struct {
	id string
}

func bufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublisher_DeliversToMatchingSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(nil)
	var got []string
	bus.Subscribe(func(e *created) { got = append(got, "created:"+e.id) })
	bus.Subscribe(func(e *deleted) { got = append(got, "deleted:"+e.id) })

	bus.Publish(&created{id: "1"})
	bus.Publish(&deleted{id: "2"})

	assert.Equal(t, []string{"created:1", "deleted:2"}, got)
	assert.Equal(t, 2, bus.SubscribersCount())
}

func TestPublisher_WarnsWithoutSubscribers(t *testing.T) {
	t.Parallel()

	log, buf := bufferedLogger(logrus.WarnLevel)
	bus := NewEventPublisher(log)
	bus.Subscribe(func(e *created) { t.Error("should not be called") })

	bus.Publish(&deleted{id: "x"})

	assert.Contains(t, buf.String(), "no matching subscribers")
}

func TestPublisher_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	log, buf := bufferedLogger(logrus.ErrorLevel)
	bus := NewEventPublisher(log)

	called := false
	bus.Subscribe(func(e *created) { panic("boom") })
	bus.Subscribe(func(e *created) { called = true })

	require.NotPanics(t, func() { bus.Publish(&created{id: "1"}) })
	assert.True(t, called, "handlers after a panicking one still run")
	assert.Contains(t, buf.String(), "panicked")
	assert.Contains(t, buf.String(), "boom")
}

func TestPublisher_UnsubscribeAndClear(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(nil)
	count := 0
	handler := func(e *created) { count++ }
	bus.Subscribe(handler)
	bus.Publish(&created{})
	bus.Unsubscribe(handler)
	bus.Publish(&created{})
	assert.Equal(t, 1, count)

	bus.Subscribe(handler)
	bus.Clear()
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	t.Parallel()

	assert.True(t, MatchSignature(func(e *created) {}, []any{&created{}}))
	assert.False(t, MatchSignature(func(e *created) {}, []any{&deleted{}}))
	assert.False(t, MatchSignature(func(e *created) {}, []any{}))
	assert.True(t, MatchSignature(func(ctx context.Context) {}, []any{context.Background()}))
	assert.True(t, MatchSignature(func(e *created) {}, []any{nil}))
	assert.False(t, MatchSignature("not a func", []any{}))
}

func TestSubscribe_PanicsOnNonFunc(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewEventPublisher(nil).Subscribe(42) })
}
