package interceptor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aydmirov/call-logging/internal/metrics"
)

// Invocation describes a single intercepted call. It lives only for the
// duration of that call and is never persisted.
type Invocation struct {
	Type   string
	Method string
	Args   []any
}

// ProceedFunc runs the wrapped call and yields its result or fault.
type ProceedFunc func() (any, error)

type Option func(*Interceptor)

// Interceptor wraps method calls and logs entry, exit and faults for
// calls whose declaring type matches the configured package prefix.
// It is immutable after construction and safe for concurrent use.
type Interceptor struct {
	logger         *slog.Logger
	basePackage    string
	excludePackage string
	format         FormatFunc
	events         chan<- metrics.Event
}

// WithBasePackage restricts logging to types whose name starts with prefix.
// An empty prefix matches everything.
func WithBasePackage(prefix string) Option {
	return func(ic *Interceptor) {
		ic.basePackage = prefix
	}
}

// WithExcludePackage suppresses logging for types whose name starts with
// prefix, even when the base package matches.
func WithExcludePackage(prefix string) Option {
	return func(ic *Interceptor) {
		ic.excludePackage = prefix
	}
}

// WithFormatter replaces the default argument renderer.
func WithFormatter(f FormatFunc) Option {
	return func(ic *Interceptor) {
		ic.format = f
	}
}

// WithCollector posts interception events to the given channel with
// non-blocking sends.
func WithCollector(events chan<- metrics.Event) Option {
	return func(ic *Interceptor) {
		ic.events = events
	}
}

func New(logger *slog.Logger, opts ...Option) *Interceptor {
	ic := &Interceptor{
		logger: logger,
		format: FormatValues,
	}

	for _, opt := range opts {
		opt(ic)
	}

	if ic.basePackage == "" {
		logger.Warn("No base package configured, logging every intercepted call")
	} else {
		logger.Info("Method-level logging enabled",
			slog.String("base_package", ic.basePackage))
	}

	return ic
}

// Around wraps a call. Calls outside the configured package prefix proceed
// untouched. Matching calls get an entry and exit line when the debug level
// is active, and an error line on fault. The wrapped call's result and
// error are always returned unchanged.
func (ic *Interceptor) Around(ctx context.Context, inv Invocation, proceed ProceedFunc) (any, error) {
	if !ic.matches(inv.Type) {
		return proceed()
	}

	debug := ic.logger.Enabled(ctx, slog.LevelDebug)
	args := ic.render(inv.Args)

	if debug {
		ic.logger.DebugContext(ctx, fmt.Sprintf("Enter: %s.%s() with arguments = %s",
			inv.Type, inv.Method, args))
	}
	ic.emit(metrics.EventCallEntered, inv)

	result, err := proceed()
	if err != nil {
		ic.logFault(ctx, inv, args, err, debug)
		ic.emit(metrics.EventCallFaulted, inv)
		return result, err
	}

	if debug {
		ic.logger.DebugContext(ctx, fmt.Sprintf("Exit: %s.%s() with result = %s",
			inv.Type, inv.Method, ic.renderResult(result)))
	}
	ic.emit(metrics.EventCallCompleted, inv)

	return result, nil
}

func (ic *Interceptor) matches(typeName string) bool {
	if ic.basePackage != "" && !strings.HasPrefix(typeName, ic.basePackage) {
		return false
	}
	if ic.excludePackage != "" && strings.HasPrefix(typeName, ic.excludePackage) {
		return false
	}
	return true
}

func (ic *Interceptor) logFault(ctx context.Context, inv Invocation, args string, err error, debug bool) {
	// A malformed error whose rendering panics must not mask the fault's
	// propagation: fall back to a placeholder line.
	defer func() {
		if recover() != nil {
			ic.logger.ErrorContext(ctx, fmt.Sprintf("Exception in %s.%s() with cause = <unrenderable>",
				inv.Type, inv.Method))
		}
	}()

	if isInvalidArgument(err) {
		ic.logger.ErrorContext(ctx, fmt.Sprintf("Illegal argument: %s in %s.%s()",
			args, inv.Type, inv.Method))
		return
	}

	cause := fmt.Sprintf("%T", RootCause(err))

	if debug {
		msg := err.Error()
		if strings.TrimSpace(msg) == "" {
			msg = "No message available"
		}
		ic.logger.ErrorContext(ctx, fmt.Sprintf("Exception in %s.%s() with cause = '%s' and message = '%s'",
			inv.Type, inv.Method, cause, msg))
	} else {
		ic.logger.ErrorContext(ctx, fmt.Sprintf("Exception in %s.%s() with cause = %s",
			inv.Type, inv.Method, cause))
	}
}

func (ic *Interceptor) emit(eventType metrics.EventType, inv Invocation) {
	if ic.events == nil {
		return
	}

	select {
	case ic.events <- metrics.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Target:    inv.Type + "." + inv.Method,
	}:
	default:
	}
}

// render never propagates a formatter failure: a panicking formatter must
// not mask the intercepted call's own outcome.
func (ic *Interceptor) render(values []any) (s string) {
	defer func() {
		if recover() != nil {
			s = "<unrenderable>"
		}
	}()
	return ic.format(values)
}

func (ic *Interceptor) renderResult(result any) (s string) {
	defer func() {
		if recover() != nil {
			s = "<unrenderable>"
		}
	}()
	if result == nil {
		return "null"
	}
	return formatValue(result)
}

func isInvalidArgument(err error) bool {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return true
	}
	var obj validation.ErrorObject
	return errors.As(err, &obj)
}

// Do routes a typed call through the interceptor, preserving the concrete
// result type for the caller.
func Do[T any](ctx context.Context, ic *Interceptor, typeName, method string, args []any, fn func() (T, error)) (T, error) {
	result, err := ic.Around(ctx, Invocation{Type: typeName, Method: method, Args: args}, func() (any, error) {
		v, callErr := fn()
		return v, callErr
	})

	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, err
	}
	return typed, err
}
