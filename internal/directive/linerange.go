package directive

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// LineRange is a parsed hl=[...] directive.
//
// It selects the lines of a code block that stay visible.
// Lines that are not selected are dimmed.
type LineRange struct {
	// Raw is the directive as it appeared in the class attribute,
	// for example "hl=[1 3-4]".
	Raw string

	// Spans holds one entry per token, in directive order.
	Spans []Span
}

// Span is a single token of a line range directive,
// expressed as an inclusive range of 0-based line indices.
//
// A single line number N is the span [N-1, N-1].
type Span struct {
	Lo, Hi int

	// Invalid is set if the token did not parse as a number.
	// Invalid spans match no line.
	Invalid bool
}

// Keeps reports whether the 0-based line i stays visible.
func (r LineRange) Keeps(i int) bool {
	for _, s := range r.Spans {
		if s.contains(i) {
			return true
		}
	}
	return false
}

// Indices expands the range into the 0-based line indices it keeps,
// in directive order.
// Duplicates are retained and invalid tokens are skipped.
func (r LineRange) Indices() []int {
	var idx []int
	for _, s := range r.Spans {
		if s.Invalid {
			continue
		}
		for i := s.Lo; i <= s.Hi; i++ {
			idx = append(idx, i)
		}
	}
	return idx
}

func (s Span) contains(i int) bool {
	return !s.Invalid && s.Lo <= i && i <= s.Hi
}

// ParseLineRange parses the first hl=[...] directive in class.
// It reports false if class does not contain one.
//
// Parsing never fails outright.
// Tokens that are not numbers produce invalid spans,
// which leave their lines dimmed.
// An empty directive, "hl=[]", keeps no lines.
func ParseLineRange(class string) (_ LineRange, ok bool) {
	m := _lineRangeRe.FindString(class)
	if len(m) == 0 {
		return LineRange{}, false
	}

	body := m[strings.LastIndex(m, _lineRangeKey)+len(_lineRangeKey):]
	body = strings.Replace(body, "[", "", 1)
	body = strings.Replace(body, "]", "", 1)

	tokens := strings.Split(body, " ")
	r := LineRange{
		Raw:   m,
		Spans: make([]Span, 0, len(tokens)),
	}
	for _, tok := range tokens {
		if s, ok := parseSpan(tok); ok {
			r.Spans = append(r.Spans, s)
		}
	}
	return r, true
}

// parseSpan parses a single "N" or "LO-HI" token.
// It reports false for a range that selects no lines at all.
func parseSpan(tok string) (Span, bool) {
	lower, upper, isRange := strings.Cut(tok, "-")
	if !isRange {
		n, ok := parseInt(tok)
		if !ok {
			return Span{Invalid: true}, true
		}
		return Span{Lo: n - 1, Hi: n - 1}, true
	}

	// Only the first two parts count: "1-2-3" is "1-2".
	upper, _, _ = strings.Cut(upper, "-")

	lo, ok := parseInt(lower)
	if !ok {
		return Span{Invalid: true}, true
	}

	hi, ok := parseInt(upper)
	if !ok || hi < lo {
		return Span{}, false
	}

	return Span{Lo: lo - 1, Hi: hi - 1}, true
}

// parseInt parses the leading integer of s the way a browser's
// parseInt does: leading whitespace is skipped, an optional sign is
// accepted, and parsing stops at the first non-digit.
// It reports false if s has no leading digits.
func parseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	var sign string
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}

	// Out of range values saturate; the error carries nothing else.
	n, _ := strconv.ParseInt(sign+s[:end], 10, strconv.IntSize)
	if n == math.MinInt {
		// Callers subtract one.
		n++
	}
	return int(n), true
}
