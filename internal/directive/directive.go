// Package directive parses the annotations that documentation authors
// embed in the class attribute of rendered code blocks.
//
// Two directives are recognized:
//
//	hl=[1 3-5]      keep lines 1, 3, 4 and 5 visible; dim the rest
//	file=main.go    caption the block with a filename
//
// Matching is textual: the class attribute is treated as a plain string,
// so a directive is found wherever it appears in it.
package directive

import (
	"regexp"
	"strings"
)

var (
	_lineRangeRe = regexp.MustCompile(`hl=\[(\s*\d*(-\d*)?)*\]`)
	_filenameRe  = regexp.MustCompile(`file=\S+`)
)

const (
	_lineRangeKey = "hl="
	_filenameKey  = "file="
)

// ParseFilename reports the filename named by the first file=
// directive in class.
// The name is returned verbatim: it is not unescaped or validated.
func ParseFilename(class string) (name string, ok bool) {
	m := _filenameRe.FindString(class)
	if len(m) == 0 {
		return "", false
	}

	// Everything after the last "file=" in the match,
	// so "file=a/file=b" names "b".
	idx := strings.LastIndex(m, _filenameKey)
	return m[idx+len(_filenameKey):], true
}
