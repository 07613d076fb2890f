package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
	"github.com/andybalholm/cascadia"
	"go.abhg.dev/codemark/internal/caption"
	"go.abhg.dev/codemark/internal/dim"
	"go.abhg.dev/codemark/internal/errdefer"
	"go.abhg.dev/codemark/internal/page"
	"go.abhg.dev/codemark/internal/sitefs"
	"golang.org/x/net/html"
)

// Finder searches for pages on disk based on the provided patterns.
type Finder interface {
	Find(patterns ...string) ([]*sitefs.File, error)
}

var _ Finder = (*sitefs.Finder)(nil)

// Dimmer dims the lines of a code block that aren't highlighted.
type Dimmer interface {
	Dim(*html.Node) (bool, error)
}

var _ Dimmer = (*dim.Dimmer)(nil)

// Labeler adds filename captions to code blocks.
type Labeler interface {
	Label(*html.Node) (bool, error)
}

var _ Labeler = (*caption.Labeler)(nil)

// Stats summarizes the work done by a [Processor].
type Stats struct {
	Pages    int // pages written
	Dimmed   int // code blocks with dimmed lines
	Labeled  int // captions added
	Warnings int // code blocks that could not be processed
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d pages, %d blocks dimmed, %d captions, %d warnings",
		s.Pages, s.Dimmed, s.Labeled, s.Warnings)
}

// Processor rewrites the code blocks of HTML pages.
//
// In terms of code organization,
// Processor's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Processor struct {
	// Log receives warnings about individual code blocks.
	Log *log.Logger

	// DebugLog receives a message for every page.
	DebugLog *log.Logger

	// Selector picks the code blocks of a page.
	// Defaults to page.DefaultSelector.
	Selector cascadia.Selector

	// Dimmer and Labeler run on every code block, in that order.
	// Either may be nil to skip that pass.
	Dimmer  Dimmer
	Labeler Labeler

	// OutDir is the directory pages are written to,
	// at their path relative to the pattern that found them.
	// If empty, pages are rewritten in place.
	OutDir string
}

// Process runs the passes over each of the given pages
// and writes the results.
//
// Failures on individual code blocks are logged and counted,
// but do not stop processing.
// Failures to read, parse, or write a page are returned.
func (p *Processor) Process(files []*sitefs.File) (*Stats, error) {
	var stats Stats
	for _, f := range files {
		if err := p.processFile(&stats, f); err != nil {
			return &stats, errtrace.Wrap(fmt.Errorf("%v: %w", f.Path, err))
		}
	}
	return &stats, nil
}

func (p *Processor) processFile(stats *Stats, f *sitefs.File) error {
	pg, err := readPage(f.Path)
	if err != nil {
		return errtrace.Wrap(err)
	}
	pg.Selector = p.Selector

	var passes []page.Pass
	var counts []*int
	if p.Dimmer != nil {
		passes = append(passes, p.Dimmer.Dim)
		counts = append(counts, &stats.Dimmed)
	}
	if p.Labeler != nil {
		passes = append(passes, p.Labeler.Label)
		counts = append(counts, &stats.Labeled)
	}

	changed, err := pg.Ready(passes...)
	if err != nil {
		for _, err := range unwrapJoined(err) {
			p.Log.Printf("%v: %v", f.Path, err)
			stats.Warnings++
		}
	}
	for i, n := range changed {
		*counts[i] += n
	}

	dst := f.Path
	if len(p.OutDir) > 0 {
		dst = filepath.Join(p.OutDir, filepath.FromSlash(f.Rel))
	}
	p.DebugLog.Printf("Writing %v", dst)

	if err := writePage(dst, pg); err != nil {
		return errtrace.Wrap(err)
	}
	stats.Pages++
	return nil
}

func readPage(path string) (_ *page.Page, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap2(page.Parse(f))
}

func writePage(path string, pg *page.Page) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(pg.Render(f))
}

// unwrapJoined splits an error built with errors.Join
// back into its parts.
func unwrapJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
