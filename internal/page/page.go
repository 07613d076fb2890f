// Package page loads rendered HTML documents
// and runs code block passes over them.
package page

import (
	"errors"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DefaultSelector matches the elements that passes run over
// when a Page has no Selector.
var DefaultSelector = cascadia.MustCompile("code")

// Pass transforms a single code element.
// It reports whether it changed the element or the tree around it.
//
// An error from a Pass is reported for that element only;
// it does not stop the pass from visiting the remaining elements.
type Pass func(el *html.Node) (changed bool, err error)

// Page is a parsed HTML document.
type Page struct {
	// Selector picks the elements each pass visits.
	// Defaults to DefaultSelector.
	Selector cascadia.Selector

	root *html.Node
}

// Parse reads a complete HTML document from r.
func Parse(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Page{root: root}, nil
}

// Root returns the document node of the page.
func (p *Page) Root() *html.Node { return p.root }

// Elements returns the elements of the page that passes visit,
// in document order.
func (p *Page) Elements() []*html.Node {
	sel := p.Selector
	if sel == nil {
		sel = DefaultSelector
	}
	return sel.MatchAll(p.root)
}

// Ready runs each pass once over the page, in order.
//
// Every pass takes its own snapshot of the matching elements
// before it starts, so elements added by an earlier pass are visited
// by later passes, but not by the pass that added them.
//
// Ready returns the number of elements each pass changed,
// indexed like passes,
// and all per-element errors joined together.
func (p *Page) Ready(passes ...Pass) ([]int, error) {
	changed := make([]int, len(passes))
	var errs []error
	for i, pass := range passes {
		for j, el := range p.Elements() {
			ok, err := pass(el)
			if err != nil {
				errs = append(errs, &ElementError{Pass: i, Index: j, Err: err})
			}
			if ok {
				changed[i]++
			}
		}
	}
	return changed, errtrace.Wrap(errors.Join(errs...))
}

// Render writes the page back out as HTML.
func (p *Page) Render(w io.Writer) error {
	return errtrace.Wrap(html.Render(w, p.root))
}

// ElementError is a failure of a pass on a single element.
type ElementError struct {
	// Pass is the index of the pass that failed.
	Pass int

	// Index is the position of the element among those matched
	// by the page's selector.
	Index int

	Err error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("pass %d: element %d: %v", e.Pass, e.Index, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
