// Package dim de-emphasizes the lines of a code block
// that are not selected by its hl=[...] directive.
package dim

import (
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/codemark/internal/directive"
	"go.abhg.dev/codemark/internal/dom"
	"golang.org/x/net/html"
)

const (
	_spanOpen  = `<span style="opacity: 0.3;">`
	_spanClose = `</span>`
)

// Dimmer wraps non-highlighted lines of code blocks
// in a span that lowers their opacity.
//
// The zero value is ready to use.
type Dimmer struct {
	// SkipDimmed leaves lines that are already wrapped
	// in a dimming span alone.
	//
	// By default, dimming the same element twice
	// nests the spans of lines dimmed the first time.
	SkipDimmed bool
}

// Dim dims the lines of el not selected by the line range directive
// in its class attribute.
// It reports whether el carried a directive.
//
// Elements without a directive are left untouched.
func (d *Dimmer) Dim(el *html.Node) (bool, error) {
	r, ok := directive.ParseLineRange(dom.Class(el))
	if !ok {
		return false, nil
	}

	markup, err := dom.InnerHTML(el)
	if err != nil {
		return false, errtrace.Wrap(err)
	}

	lines := d.DimLines(strings.Split(markup, "\n"), r)
	if err := dom.SetInnerHTML(el, strings.Join(lines, "\n")); err != nil {
		return false, errtrace.Wrap(err)
	}
	return true, nil
}

// DimLines wraps every line whose 0-based index is not kept by r
// in a dimming span.
// Kept lines are returned unchanged.
//
// lines is modified in place and returned.
func (d *Dimmer) DimLines(lines []string, r directive.LineRange) []string {
	for i, line := range lines {
		if r.Keeps(i) {
			continue
		}
		if d.SkipDimmed && isDimmed(line) {
			continue
		}
		lines[i] = _spanOpen + line + _spanClose
	}
	return lines
}

// isDimmed reports whether line is exactly one dimming span:
// it opens with one and the span is closed only at the very end.
func isDimmed(line string) bool {
	if !strings.HasPrefix(line, _spanOpen) || !strings.HasSuffix(line, _spanClose) {
		return false
	}

	rest := line[len(_spanOpen):]
	depth := 1
	for len(rest) > 0 {
		open := strings.Index(rest, "<span")
		end := strings.Index(rest, _spanClose)
		switch {
		case end < 0:
			return false
		case open >= 0 && open < end:
			depth++
			rest = rest[open+len("<span"):]
		default:
			depth--
			rest = rest[end+len(_spanClose):]
			if depth == 0 {
				return len(rest) == 0
			}
		}
	}
	return false
}
