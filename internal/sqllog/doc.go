// Package sqllog implements call logging for SQL repository objects. The
// verbosity is selected per call from a mutable Settings holder, so a
// configuration reload changes behavior without restarting:
//
//	info  - one line per call: "[SQL] Repo.Method() called"
//	debug - the same with rendered call arguments
//	error - silent entry, faults only
//
// Faults are always logged at error level while the interceptor is enabled,
// and the original error is returned to the caller unchanged. Whether
// repositories get wrapped at all is a composition-time decision driven by
// the enabled flag.
package sqllog
