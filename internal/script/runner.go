package script

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"easel/internal/event"
	"easel/internal/event/events"
	"easel/internal/event/topic"
)

// Hook function names a script may define. Undefined hooks are skipped.
const (
	HookAppend = "on_append"
	HookUndo   = "on_undo"
	HookRedo   = "on_redo"
	HookClear  = "on_clear"
)

// Runner loads a user Lua file and invokes its hook functions on history
// notifications. Script errors are contained and counted; they never
// propagate into the engine.
type Runner struct {
	mu sync.Mutex
	L  *lua.LState

	bus  event.Bus
	subs []event.Subscription

	invoked  atomic.Uint64
	failures atomic.Uint64

	closed bool
}

// NewRunner creates a runner from a Lua hook file.
func NewRunner(path string) (*Runner, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return &Runner{L: L}, nil
}

// Attach subscribes the runner to history notifications on the bus.
// Hooks run at low priority, after every engine and UI handler.
func (r *Runner) Attach(bus event.Bus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("script runner is closed")
	}
	if r.bus != nil {
		return fmt.Errorf("script runner is already attached")
	}

	handlers := []struct {
		topic topic.Topic
		fn    event.HandlerFunc
	}{
		{events.TopicHistoryAppended, r.handleAppended},
		{events.TopicHistoryUndone, r.handleUndone},
		{events.TopicHistoryRedone, r.handleRedone},
		{events.TopicHistoryCleared, r.handleCleared},
	}

	for _, h := range handlers {
		sub, err := bus.SubscribeFunc(h.topic, h.fn, event.WithPriority(event.PriorityLow))
		if err != nil {
			for _, s := range r.subs {
				_ = bus.Unsubscribe(s)
			}
			r.subs = nil
			return fmt.Errorf("subscribing to %s: %w", h.topic, err)
		}
		r.subs = append(r.subs, sub)
	}

	r.bus = bus
	return nil
}

func (r *Runner) handleAppended(_ context.Context, env event.Envelope) error {
	payload, ok := env.Payload.(events.HistoryAppended)
	if !ok {
		return nil
	}
	r.call(HookAppend, lua.LString(payload.Token), lua.LBool(payload.Bootstrap))
	return nil
}

func (r *Runner) handleUndone(_ context.Context, env event.Envelope) error {
	payload, ok := env.Payload.(events.HistoryUndone)
	if !ok {
		return nil
	}
	r.call(HookUndo, lua.LString(payload.Token))
	return nil
}

func (r *Runner) handleRedone(_ context.Context, env event.Envelope) error {
	payload, ok := env.Payload.(events.HistoryRedone)
	if !ok {
		return nil
	}
	r.call(HookRedo, lua.LString(payload.Token))
	return nil
}

func (r *Runner) handleCleared(_ context.Context, _ event.Envelope) error {
	r.call(HookClear)
	return nil
}

// call invokes a global Lua function if the script defines it.
func (r *Runner) call(name string, args ...lua.LValue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	fn := r.L.GetGlobal(name)
	if fn == lua.LNil {
		return
	}

	r.invoked.Add(1)
	err := r.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
	if err != nil {
		r.failures.Add(1)
		log.Printf("script: %s failed: %v", name, err)
	}
}

// Invoked returns the number of hook invocations.
func (r *Runner) Invoked() uint64 {
	return r.invoked.Load()
}

// Failures returns the number of hook invocations that raised a Lua error.
func (r *Runner) Failures() uint64 {
	return r.failures.Load()
}

// Close detaches from the bus and shuts the Lua state down. Idempotent.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	bus := r.bus
	subs := r.subs
	r.bus = nil
	r.subs = nil
	r.mu.Unlock()

	if bus != nil {
		for _, sub := range subs {
			_ = bus.Unsubscribe(sub)
		}
	}

	r.mu.Lock()
	r.L.Close()
	r.mu.Unlock()
}
