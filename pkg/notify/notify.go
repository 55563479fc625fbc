// Package notify delivers user-facing, fire-and-forget notifications.
package notify

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-console/pkg/eventbus"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
	Warning Severity = "warning"
)

// Notifier shows message to the user. The caller never consumes a result.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to Notifier.
type Func func(message string, severity Severity)

func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Notification is the event published by BusNotifier.
type Notification struct {
	Message  string
	Severity Severity
}

type busNotifier struct {
	bus eventbus.EventBus
}

// NewBusNotifier publishes every notification as *Notification on bus.
func NewBusNotifier(bus eventbus.EventBus) Notifier {
	return &busNotifier{bus: bus}
}

func (n *busNotifier) Notify(message string, severity Severity) {
	n.bus.Publish(&Notification{Message: message, Severity: severity})
}

type logNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier writes notifications to log; errors at error level,
// warnings at warn, the rest at info.
func NewLogNotifier(log *logrus.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(message string, severity Severity) {
	entry := n.log.WithField("severity", string(severity))
	switch severity {
	case Error:
		entry.Error(message)
	case Warning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

type multi []Notifier

// Multi fans a notification out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multi) Notify(message string, severity Severity) {
	for _, n := range m {
		n.Notify(message, severity)
	}
}

// Discard drops every notification.
var Discard Notifier = Func(func(string, Severity) {})
