// Package caption labels code blocks with the name of the file they
// were taken from.
package caption

import (
	"errors"

	"braces.dev/errtrace"
	"go.abhg.dev/codemark/internal/directive"
	"go.abhg.dev/codemark/internal/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker flanks the filename on both sides of a caption.
const Marker = "👆"

const _style = "width: 100%; text-align: right; display: block;"

// ErrNoParent is returned when a code element that asks for a caption
// is not attached to a parent that the caption could be added to.
var ErrNoParent = errors.New("code element has no parent")

// Labeler appends filename captions to code blocks.
type Labeler struct{}

// Label appends a caption after el if its class attribute carries
// a file=NAME directive.
// It reports whether a caption was added.
//
// The caption becomes the last child of el's parent.
// NAME is inserted as markup, not text:
// characters like '<' and '&' are not escaped.
func (*Labeler) Label(el *html.Node) (bool, error) {
	name, ok := directive.ParseFilename(dom.Class(el))
	if !ok {
		return false, nil
	}

	parent := el.Parent
	if parent == nil {
		return false, errtrace.Wrap(ErrNoParent)
	}

	sub, err := New(name)
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	parent.AppendChild(sub)
	return true, nil
}

// New builds a detached caption node for the given filename.
func New(name string) (*html.Node, error) {
	sub := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Sub.String(),
		DataAtom: atom.Sub,
		Attr: []html.Attribute{
			{Key: "style", Val: _style},
		},
	}
	if err := dom.SetInnerHTML(sub, Marker+" "+name+" "+Marker); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return sub, nil
}
