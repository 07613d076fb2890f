package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/codemark/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is prepended to flag names to find environment variables.
// -skip-dimmed is read from CODEMARK_SKIP_DIMMED.
const _envPrefix = "CODEMARK"

// params holds all arguments for codemark.
type params struct {
	version bool
	help    Help

	Config string
	Debug  flagvalue.FileSwitch

	OutputDir string
	Exclude   []globPattern

	Selector   string
	NoDim      bool
	NoLabel    bool
	SkipDimmed bool

	Patterns []string
}

// cliParser parses the command line arguments for codemark.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("codemark", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "", "")
	flag.Var(flagvalue.ListOf(&p.Exclude), "exclude", "")

	// Code blocks:
	flag.StringVar(&p.Selector, "selector", "code", "")
	flag.BoolVar(&p.NoDim, "no-dim", false, "")
	flag.BoolVar(&p.NoLabel, "no-label", false, "")
	flag.BoolVar(&p.SkipDimmed, "skip-dimmed", false, "")

	// Program-level:
	flag.StringVar(&p.Config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()

	// The flag set reports its own errors with the usage.
	// Anything else, like a missing config file, is ours to print.
	var reported bool
	usage := flag.Usage
	flag.Usage = func() {
		reported = true
		usage()
	}

	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		if !reported {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errtrace.Wrap(errors.Join(errInvalidArguments, err))
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "codemark", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil && h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Patterns = args
	if len(p.Patterns) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one file, directory, or pattern.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// globPattern is a doublestar pattern passed to -exclude.
type globPattern string

var _ flag.Getter = (*globPattern)(nil)

func (g *globPattern) Get() any { return string(*g) }

func (g *globPattern) String() string { return string(*g) }

func (g *globPattern) Set(s string) error {
	if !doublestar.ValidatePattern(s) {
		return errtrace.Errorf("bad pattern %q", s)
	}
	*g = globPattern(s)
	return nil
}

func globStrings(gs []globPattern) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}
