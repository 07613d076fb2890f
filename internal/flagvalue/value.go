// Package flagvalue provides flag.Value implementations
// for the codemark command line.
package flagvalue

import "flag"

// Getter constrains a list element type:
// pointers to it must implement flag.Getter.
type Getter[T any] interface {
	*T
	flag.Getter
}
