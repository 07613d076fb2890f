// Package sitefs locates the HTML pages of a rendered site on disk.
package sitefs

import (
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"github.com/bmatcuk/doublestar/v4"
)

// File is an HTML page found by a [Finder].
type File struct {
	// Path is the location of the page on disk.
	Path string

	// Rel is the slash-separated path of the page
	// relative to the pattern that matched it.
	//
	// For a file named directly, this is its base name.
	Rel string
}

// Finder resolves patterns to HTML pages.
//
// Each pattern is one of:
//
//   - a file, used as-is regardless of extension
//   - a directory, searched recursively for *.html and *.htm files
//   - a doublestar glob like "_site/**/*.html"
type Finder struct {
	// Exclude lists doublestar patterns for pages to skip.
	// A page is skipped if a pattern matches
	// either its Path or its Rel.
	Exclude []string

	// DebugLog receives a message for every page found or skipped.
	// Defaults to discarding them.
	DebugLog *log.Logger
}

// Find returns the pages matched by patterns,
// sorted by path, with duplicates removed.
func (f *Finder) Find(patterns ...string) ([]*File, error) {
	debug := f.DebugLog
	if debug == nil {
		debug = log.New(io.Discard, "", 0)
	}

	seen := make(map[string]struct{})
	var files []*File
	for _, pattern := range patterns {
		found, err := f.find(pattern)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		for _, file := range found {
			if _, ok := seen[file.Path]; ok {
				continue
			}
			seen[file.Path] = struct{}{}

			if f.excluded(file) {
				debug.Printf("Skipping %v", file.Path)
				continue
			}

			debug.Printf("Found %v", file.Path)
			files = append(files, file)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (f *Finder) find(pattern string) ([]*File, error) {
	base, glob := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if glob != "" && hasMeta(glob) {
		return globFiles(filepath.FromSlash(base), glob)
	}

	info, err := os.Stat(pattern)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if !info.IsDir() {
		return []*File{{Path: pattern, Rel: filepath.Base(pattern)}}, nil
	}
	return walkDir(pattern)
}

func globFiles(base, glob string) ([]*File, error) {
	matches, err := doublestar.Glob(os.DirFS(base), glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errtrace.Errorf("glob %q: %w", glob, err)
	}

	files := make([]*File, len(matches))
	for i, m := range matches {
		files[i] = &File{
			Path: filepath.Join(base, filepath.FromSlash(m)),
			Rel:  m,
		}
	}
	return files, nil
}

func walkDir(dir string) ([]*File, error) {
	var files []*File
	err := fs.WalkDir(os.DirFS(dir), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		if IsHTML(p) {
			files = append(files, &File{
				Path: filepath.Join(dir, filepath.FromSlash(p)),
				Rel:  p,
			})
		}
		return nil
	})
	return files, errtrace.Wrap(err)
}

func (f *Finder) excluded(file *File) bool {
	p := filepath.ToSlash(file.Path)
	for _, pattern := range f.Exclude {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, file.Rel); ok {
			return true
		}
	}
	return false
}

// IsHTML reports whether p names an HTML page by its extension.
func IsHTML(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
