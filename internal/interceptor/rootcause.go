package interceptor

import "errors"

// RootCause follows an error's unwrap chain to its deepest link. The walk
// keeps the links it has already visited and stops before revisiting one,
// so a chain that points back at itself terminates instead of looping.
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	root := err
	seen := []error{root}
	for {
		next := errors.Unwrap(root)
		if next == nil {
			return root
		}
		for _, visited := range seen {
			if next == visited {
				return root
			}
		}
		root = next
		seen = append(seen, root)
	}
}
