package notify

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-console/pkg/eventbus"
)

func TestLogNotifier_Levels(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	n := NewLogNotifier(log)

	n.Notify("saved", Success)
	n.Notify("careful", Warning)
	n.Notify("failed", Error)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, logrus.ErrorLevel, entries[2].Level)
	assert.Equal(t, "failed", entries[2].Message)
	assert.Equal(t, "error", entries[2].Data["severity"])
}

func TestBusNotifier_Publishes(t *testing.T) {
	t.Parallel()

	bus := eventbus.NewEventPublisher(nil)
	var got []*Notification
	bus.Subscribe(func(n *Notification) { got = append(got, n) })

	NewBusNotifier(bus).Notify("deleted", Info)

	require.Len(t, got, 1)
	assert.Equal(t, &Notification{Message: "deleted", Severity: Info}, got[0])
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	t.Parallel()

	var a, b []string
	n := Multi(
		Func(func(m string, _ Severity) { a = append(a, m) }),
		nil,
		Func(func(m string, s Severity) { b = append(b, string(s)+":"+m) }),
	)
	n.Notify("hello", Warning)

	assert.Equal(t, []string{"hello"}, a)
	assert.Equal(t, []string{"warning:hello"}, b)
}
