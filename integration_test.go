package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codemark/internal/iotest"
	"golang.org/x/net/html"
)

// Processes a small linked site and serves it,
// verifying that every page is still reachable
// and that every code block with a directive was processed.
func TestIntegration_site(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	writeFile(t, filepath.Join(site, "index.html"), sitePage("Home",
		[]string{"guide/", "api/"}, "hl=[1] file=main.go"))
	writeFile(t, filepath.Join(site, "guide", "index.html"), sitePage("Guide",
		[]string{"../", "../api/"}, "hl=[2-3] file=guide.go"))
	writeFile(t, filepath.Join(site, "api", "index.html"), sitePage("API",
		[]string{"../guide/"}, "file=api.go"))

	out := t.TempDir()
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"-out=" + out, "-debug", filepath.Join(site, "**/*.html")})
	require.Zero(t, exitCode)

	srv := httptest.NewServer(http.FileServer(http.FS(os.DirFS(out))))
	t.Cleanup(srv.Close)

	w := newURLWalker(t)
	w.Walk(srv.URL)

	assert.Len(t, w.seen, 3, "every page must be visited")
	assert.Equal(t, 3, w.captions, "one caption per page")
	assert.Equal(t, 3+2, w.dimmed, "home dims three lines, guide dims two")
}

func sitePage(title string, links []string, class string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<!DOCTYPE html><html><head><title>%s</title></head><body>\n", title)
	for _, l := range links {
		fmt.Fprintf(&sb, "<a href=%q>%s</a>\n", l, l)
	}
	fmt.Fprintf(&sb, "<pre><code class=%q>one\ntwo\nthree\nfour</code></pre>\n", class)
	sb.WriteString("</body></html>\n")
	return sb.String()
}

// urlWalker visits all local pages of a served site,
// verifying that none of the links are broken
// and counting the captions and dimmed lines it sees.
type urlWalker struct {
	t      *testing.T
	host   string
	seen   map[string]struct{}
	queue  []*url.URL
	client *http.Client

	captions int
	dimmed   int
}

func newURLWalker(t *testing.T) *urlWalker {
	return &urlWalker{
		t:      t,
		seen:   make(map[string]struct{}),
		client: http.DefaultClient,
	}
}

func (w *urlWalker) Walk(startPage string) {
	u, err := url.Parse(startPage + "/")
	require.NoError(w.t, err)
	w.host = u.Host

	w.queue = append(w.queue, u)
	for len(w.queue) > 0 {
		var u *url.URL
		u, w.queue = w.queue[0], w.queue[1:]
		w.visit(u)
	}
}

func (w *urlWalker) visit(dest *url.URL) {
	if _, ok := w.seen[dest.String()]; ok {
		return
	}
	w.seen[dest.String()] = struct{}{}

	w.t.Log("Visiting", dest)
	res, err := w.client.Get(dest.String())
	if !assert.NoError(w.t, err, "error visiting %v", dest) {
		return
	}
	defer res.Body.Close()
	if !assert.Equal(w.t, 200, res.StatusCode, "bad response from %v: %v", dest, res.Status) {
		return
	}

	tokz := html.NewTokenizer(res.Body)
	for {
		if tokz.Next() == html.ErrorToken {
			err := tokz.Err()
			if errors.Is(err, io.EOF) {
				err = nil
			}
			assert.NoError(w.t, err, "error reading %v", dest)
			break
		}

		tok := tokz.Token()
		if tok.Type != html.StartTagToken {
			continue
		}

		switch tok.Data {
		case "sub":
			w.captions++
		case "span":
			if attr(tok, "style") == "opacity: 0.3;" {
				w.dimmed++
			}
		case "a":
			if href := attr(tok, "href"); len(href) > 0 {
				w.push(dest, href)
			}
		}
	}
}

func (w *urlWalker) push(from *url.URL, href string) {
	u, err := url.Parse(href)
	if !assert.NoError(w.t, err, "bad href %q on page %v", href, from) {
		return
	}

	if len(u.Host) > 0 {
		if u.Host == w.host {
			w.queue = append(w.queue, u)
		}
		return
	}

	w.queue = append(w.queue, from.ResolveReference(u))
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
