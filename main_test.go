package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codemark/internal/iotest"
)

func TestMainCmd_help(t *testing.T) {
	t.Parallel()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"-h"})
	assert.Zero(t, exitCode, "-h should have zero status code")
}

func TestMainCmd_version(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: &buff,
		Stderr: iotest.Writer(t),
	}).Run([]string{"-version"})
	assert.Zero(t, exitCode, "-version should have zero status code")

	assert.Contains(t, buff.String(), "codemark")
	assert.Contains(t, buff.String(), _version)
}

func TestMainCmd_unknownFlag(t *testing.T) {
	t.Parallel()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"--this-flag-does-not-exist"})
	assert.NotZero(t, exitCode, "unknown flag should have non-zero status code")
}

func TestMainCmd_errors(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	writeFile(t, filepath.Join(site, "style.css"), "body {}")

	tests := []struct {
		desc string
		give []string
		want string
	}{
		{
			desc: "bad selector",
			give: []string{"-selector", "code[", site},
			want: `bad selector "code["`,
		},
		{
			desc: "no pages",
			give: []string{site},
			want: "no pages matched",
		},
		{
			desc: "missing input",
			give: []string{filepath.Join(site, "nope.html")},
			want: "no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			exitCode := (&mainCmd{
				Stdout: iotest.Writer(t),
				Stderr: &stderr,
			}).Run(tt.give)
			assert.NotZero(t, exitCode)
			assert.Contains(t, stderr.String(), "codemark: ")
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestMainCmd_process(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	writeFile(t, filepath.Join(site, "index.html"), _examplePage)
	writeFile(t, filepath.Join(site, "pkg", "foo", "index.html"), _examplePage)
	writeFile(t, filepath.Join(site, "vendor", "index.html"), _examplePage)
	out := t.TempDir()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{
		"-out", out,
		"-exclude", "vendor/**",
		"-no-label",
		"-debug",
		site,
	})
	require.Zero(t, exitCode, "expected success")

	for _, p := range []string{"index.html", "pkg/foo/index.html"} {
		doc := parseFile(t, filepath.Join(out, filepath.FromSlash(p)))
		assert.Len(t, _dimmedSel.MatchAll(doc), 2, "%v: dimmed lines", p)
		assert.Empty(t, _subSel.MatchAll(doc), "%v: -no-label", p)
	}

	_, err := os.Stat(filepath.Join(out, "vendor", "index.html"))
	assert.ErrorIs(t, err, os.ErrNotExist, "excluded page must not be written")
}

// Running twice in place nests the dimming spans,
// unless -skip-dimmed is used.
func TestMainCmd_rerun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc       string
		flags      []string
		wantDimmed int
		wantSubs   int
	}{
		{
			desc:       "default",
			wantDimmed: 4,
			wantSubs:   2,
		},
		{
			desc:       "skip dimmed",
			flags:      []string{"-skip-dimmed", "-no-label"},
			wantDimmed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			page := filepath.Join(t.TempDir(), "index.html")
			writeFile(t, page, _examplePage)

			for range 2 {
				exitCode := (&mainCmd{
					Stdout: iotest.Writer(t),
					Stderr: iotest.Writer(t),
				}).Run(append(tt.flags, page))
				require.Zero(t, exitCode, "expected success")
			}

			doc := parseFile(t, page)
			assert.Len(t, _dimmedSel.MatchAll(doc), tt.wantDimmed)
			assert.Len(t, _subSel.MatchAll(doc), tt.wantSubs)
		})
	}
}

func TestMainCmd_debugFile(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	page := filepath.Join(site, "index.html")
	writeFile(t, page, _examplePage)
	logFile := filepath.Join(t.TempDir(), "debug.log")

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"-debug=" + logFile, page})
	require.Zero(t, exitCode, "expected success")

	body, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Writing "+page)
	assert.Contains(t, string(body), "Processed 1 pages")
}
