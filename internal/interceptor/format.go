package interceptor

import (
	"fmt"
	"strings"
)

// FormatFunc renders an argument list for a log line. Implementations may
// panic on malformed values; the interceptor isolates such failures and
// substitutes a placeholder.
type FormatFunc func(values []any) string

// FormatValues is the default renderer. Arguments come out as a bracketed
// comma-separated list, e.g. [42, ann].
func FormatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}
