// Package metrics provides real-time metrics collection for intercepted calls.
//
// It uses a channel-based event pipeline to asynchronously count:
//   - Call entries per intercepted target
//   - Completed calls
//   - Faulted calls
//   - Repository-level calls
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the intercepted call path. Interceptors post events via buffered
// channels with non-blocking semantics so that logging overhead stays bounded.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	// Emit events during call interception
//	collector.EventChannel() <- metrics.Event{
//		Type:   metrics.EventCallEntered,
//		Target: "UserService.FindByID",
//	}
//
//	// Get metrics snapshot
//	snapshot := collector.Snapshot()
//
// The package provides thread-safe counter storage using sync.RWMutex and
// supports graceful shutdown with event draining to prevent data loss.
package metrics
