package sqllog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aydmirov/call-logging/internal/interceptor"
	"github.com/aydmirov/call-logging/internal/metrics"
)

type Option func(*Interceptor)

// WithCollector posts repository call events to the given channel with
// non-blocking sends.
func WithCollector(events chan<- metrics.Event) Option {
	return func(ic *Interceptor) {
		ic.events = events
	}
}

// Interceptor logs repository-pattern calls at a severity chosen per call
// from the settings holder.
type Interceptor struct {
	logger   *slog.Logger
	settings *Settings
	events   chan<- metrics.Event
}

func NewInterceptor(logger *slog.Logger, settings *Settings, opts ...Option) *Interceptor {
	ic := &Interceptor{
		logger:   logger,
		settings: settings,
	}

	for _, opt := range opts {
		opt(ic)
	}

	logger.Info("[SQL LOGGING] Repository call logging initialized",
		slog.Bool("enabled", settings.Enabled()),
		slog.String("level", settings.Level().String()))

	return ic
}

// Before emits the entry line for one repository call, according to the
// current level.
func (ic *Interceptor) Before(ctx context.Context, repo, method string, args ...any) {
	if !ic.settings.Enabled() {
		return
	}

	switch ic.settings.Level() {
	case LevelInfo:
		ic.logger.InfoContext(ctx, fmt.Sprintf("[SQL] %s.%s() called", repo, method))
	case LevelDebug:
		ic.logger.DebugContext(ctx, fmt.Sprintf("[SQL][DEBUG] %s.%s() called with args: %s",
			repo, method, interceptor.FormatValues(args)))
	default:
		// LevelError logs nothing on entry
	}

	ic.emit(repo, method)
}

// Do wraps one repository call: entry line, the call itself, and an error
// line on fault. The call's error is always returned unchanged.
func (ic *Interceptor) Do(ctx context.Context, repo, method string, args []any, fn func() error) error {
	ic.Before(ctx, repo, method, args...)

	err := fn()
	if err != nil && ic.settings.Enabled() {
		ic.logError(ctx, repo, method, err)
	}

	return err
}

func (ic *Interceptor) logError(ctx context.Context, repo, method string, err error) {
	// A malformed error whose rendering panics must not mask the fault's
	// propagation: fall back to a placeholder line.
	defer func() {
		if recover() != nil {
			ic.logger.ErrorContext(ctx, fmt.Sprintf("[SQL][ERROR] Exception in %s.%s(): <unrenderable>",
				repo, method))
		}
	}()

	ic.logger.ErrorContext(ctx, fmt.Sprintf("[SQL][ERROR] Exception in %s.%s(): %s",
		repo, method, err.Error()))
}

func (ic *Interceptor) emit(repo, method string) {
	if ic.events == nil {
		return
	}

	select {
	case ic.events <- metrics.Event{
		Type:      metrics.EventRepositoryCall,
		Timestamp: time.Now(),
		Target:    repo + "." + method,
	}:
	default:
	}
}
