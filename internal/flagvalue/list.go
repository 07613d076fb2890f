package flagvalue

import (
	"strings"

	"braces.dev/errtrace"
)

// List collects every occurrence of a repeatable flag, in order.
//
// Each occurrence is parsed by the element type's own Set method,
// so validation happens per value.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice so that it can be registered as a flag:
//
//	flag.Var(flagvalue.ListOf(&patterns), "exclude", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the collected values as a []T.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String joins the collected values with ", ".
func (lv *List[T, PT]) String() string {
	items := make([]string, len(*lv))
	for i := range *lv {
		items[i] = PT(&(*lv)[i]).String()
	}
	return strings.Join(items, ", ")
}

// Set parses and appends a single occurrence of the flag.
func (lv *List[T, PT]) Set(s string) error {
	var v T
	if err := PT(&v).Set(s); err != nil {
		return errtrace.Wrap(err)
	}
	*lv = append(*lv, v)
	return nil
}
