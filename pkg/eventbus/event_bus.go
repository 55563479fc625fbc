package eventbus

import (
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// EventBus delivers events to every subscribed func whose parameter list
// matches the published arguments. Handlers run synchronously on the
// publishing goroutine.
type EventBus interface {
	Publish(args ...any)
	Subscribe(handler any)
	Unsubscribe(handler any)
	Clear()
	SubscribersCount() int
}

type subscriber struct {
	handler reflect.Value
	typ     reflect.Type
}

type publisher struct {
	log *logrus.Logger

	mu          sync.RWMutex
	subscribers []subscriber
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &publisher{log: log}
}

// MatchSignature reports whether handler can be called with args.
func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func {
		return false
	}
	return matchArgs(t, args)
}

func matchArgs(t reflect.Type, args []any) bool {
	if t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			switch param.Kind() {
			case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice:
				continue
			default:
				return false
			}
		}
		argType := reflect.TypeOf(arg)
		if param.Kind() == reflect.Interface {
			if !argType.Implements(param) {
				return false
			}
			continue
		}
		if !argType.AssignableTo(param) {
			return false
		}
	}
	return true
}

func (p *publisher) Publish(args ...any) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}

	p.mu.RLock()
	subs := make([]subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.RUnlock()

	handled := false
	for _, s := range subs {
		if !matchArgs(s.typ, args) {
			continue
		}
		callArgs := make([]reflect.Value, len(in))
		for i := range in {
			if in[i].IsValid() {
				callArgs[i] = in[i]
			} else {
				callArgs[i] = reflect.Zero(s.typ.In(i))
			}
		}
		if p.call(s, callArgs, args) {
			handled = true
		}
	}

	if !handled && p.log != nil {
		p.log.WithField("args", args).Warn("eventbus.Publish: no matching subscribers")
	}
}

func (p *publisher) call(s subscriber, in []reflect.Value, args []any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if p.log != nil {
				p.log.WithFields(logrus.Fields{
					"handler": s.typ.String(),
					"args":    args,
				}).Errorf("eventbus: handler panicked: %v", r)
			}
		}
	}()
	s.handler.Call(in)
	return true
}

func (p *publisher) Subscribe(handler any) {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func {
		panic("handler must be a function")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, subscriber{handler: reflect.ValueOf(handler), typ: t})
}

// Unsubscribe removes the first subscription registered with the same func value.
func (p *publisher) Unsubscribe(handler any) {
	ptr := reflect.ValueOf(handler).Pointer()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.subscribers {
		if s.handler.Pointer() == ptr {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = nil
}

func (p *publisher) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}
