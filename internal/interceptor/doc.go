// Package interceptor implements method-level call logging. An Interceptor
// wraps a call, emits an entry line with arguments and an exit line with the
// result at debug level, and an error line with the fault's root cause when
// the call fails. Calls are filtered by a type-name prefix so only the
// application's own components get logged.
//
// Interception is applied explicitly at composition time, either through
// Around with an Invocation describing the call, or through the generic Do
// helper which preserves the wrapped function's result type. The interceptor
// never changes a call's result or error identity.
package interceptor
