// Package errdefer runs cleanup whose failure must still be reported
// by the function that deferred it.
package errdefer

import (
	"errors"
	"io"

	"braces.dev/errtrace"
)

// Close closes closer and joins its error, if any, into *err.
//
// Pair it with a named error return:
//
//	func write(path string) (err error) {
//		f, err := os.Create(path)
//		...
//		defer errdefer.Close(&err, f)
//	}
func Close(err *error, closer io.Closer) {
	if cerr := closer.Close(); cerr != nil {
		*err = errors.Join(*err, errtrace.Wrap(cerr))
	}
}
