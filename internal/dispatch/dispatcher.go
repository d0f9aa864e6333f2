package dispatch

import (
	"context"
	"fmt"

	"syscli/internal/logger"
)

// Handler performs one operation. Its internals are unknown to the dispatcher.
type Handler func(ctx context.Context) error

// Handlers is a handler table keyed by operation.
type Handlers map[Operation]Handler

// Dispatcher routes a parsed Operation to its handler.
type Dispatcher struct {
	log      *logger.Logger
	handlers Handlers
}

// New builds a Dispatcher from a complete handler table.
// It panics if any declared operation lacks a handler or if the table holds
// an undeclared operation, so a new Operation cannot ship unrouted.
func New(log *logger.Logger, handlers Handlers) *Dispatcher {
	for _, op := range Operations() {
		if handlers[op] == nil {
			panic(fmt.Sprintf("dispatch: no handler registered for %s", op))
		}
	}
	table := make(Handlers, len(handlers))
	for op, h := range handlers {
		if !op.Valid() {
			panic(fmt.Sprintf("dispatch: handler registered for undeclared %s", op))
		}
		table[op] = h
	}
	return &Dispatcher{log: log, handlers: table}
}

// Dispatch invokes the handler for op exactly once.
// A handler failure is returned as a *HandlerError.
func (d *Dispatcher) Dispatch(ctx context.Context, op Operation) error {
	h, ok := d.handlers[op]
	if !ok {
		return &UsageError{Msg: fmt.Sprintf("no handler for %s", op)}
	}

	d.log.Debug("Dispatching %s command", op)
	if err := h(ctx); err != nil {
		return &HandlerError{Op: op, Err: err}
	}
	return nil
}
