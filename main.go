// codemark post-processes the code blocks of rendered HTML pages.
//
// It dims the lines of a code block that aren't selected
// by an hl=[...] directive in its class attribute,
// and captions blocks that name their source with file=NAME.
//
// Run codemark -help for usage.
package main

import (
	"errors"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"
	"github.com/andybalholm/cascadia"
	"go.abhg.dev/codemark/internal/caption"
	"go.abhg.dev/codemark/internal/dim"
	"go.abhg.dev/codemark/internal/sitefs"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("codemark: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Open(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() {
		err = errors.Join(err, closeDebug())
	}()
	debugLog := log.New(debugw, "", 0)

	sel, err := cascadia.Compile(opts.Selector)
	if err != nil {
		return errtrace.Errorf("bad selector %q: %w", opts.Selector, err)
	}

	finder := sitefs.Finder{
		Exclude:  globStrings(opts.Exclude),
		DebugLog: debugLog,
	}
	files, err := finder.Find(opts.Patterns...)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if len(files) == 0 {
		return errtrace.Errorf("no pages matched %q", opts.Patterns)
	}

	proc := Processor{
		Log:      cmd.log,
		DebugLog: debugLog,
		Selector: sel,
		OutDir:   opts.OutputDir,
	}
	if !opts.NoDim {
		proc.Dimmer = &dim.Dimmer{SkipDimmed: opts.SkipDimmed}
	}
	if !opts.NoLabel {
		proc.Labeler = new(caption.Labeler)
	}

	stats, err := proc.Process(files)
	if err != nil {
		return errtrace.Wrap(err)
	}
	debugLog.Printf("Processed %v", stats)
	return nil
}
