// Package service holds the demo business layer whose methods the call
// interceptor wraps. Arguments are validated up front so bad input surfaces
// as the interceptor's illegal-argument log line rather than a storage fault.
package service
