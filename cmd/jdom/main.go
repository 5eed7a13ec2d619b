// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jdom checks, formats, and queries JSON documents.
//
// Usage:
//
//	jdom check [files...]
//	jdom fmt [--indent=S] [--compact] [files...]
//	jdom get <file> [path...]
//
// With no files, input is read from stdin. Settings may be read from a YAML
// or TOML file given by --config; command-line flags take precedence.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jdom"
	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/dom/cursor"
	"github.com/creachadair/jdom/internal/config"
	"github.com/tailscale/hujson"
)

type cli struct {
	Config      string `help:"Read settings from this YAML or TOML file." short:"c" type:"path"`
	Standardize bool   `help:"Accept JWCC input with comments and trailing commas."`
	MaxDepth    int    `help:"Maximum nesting depth of input (0 means the default)."`
	Verbose     bool   `help:"Log each input as it is processed." short:"v"`

	Check checkCmd `cmd:"" help:"Report whether inputs are valid JSON."`
	Fmt   fmtCmd   `cmd:"" help:"Pretty-print JSON inputs."`
	Get   getCmd   `cmd:"" help:"Print the value at a path in a JSON input."`
}

// env carries the settings and streams shared by the subcommands.
type env struct {
	cfg     *config.Config
	stdin   io.Reader
	stdout  io.Writer
	log     *log.Logger
	verbose bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var flags cli
	parser, err := kong.New(&flags,
		kong.Name("jdom"),
		kong.Description("Check, format, and query JSON documents."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "jdom: %v\n", err)
		return 2
	}

	logger := log.New(stderr, "jdom: ", 0)
	cfg, err := flags.loadConfig()
	if err != nil {
		logger.Print(userMessage(err))
		return exitCode(err)
	}
	e := &env{cfg: cfg, stdin: stdin, stdout: stdout, log: logger, verbose: flags.Verbose}
	if err := ctx.Run(e); err != nil {
		logger.Print(userMessage(err))
		return exitCode(err)
	}
	return 0
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (c *cli) loadConfig() (*config.Config, error) {
	cfg := config.New()
	if c.Config != "" {
		var err error
		cfg, err = config.Load(c.Config)
		if err != nil {
			return nil, newError(configError, c.Config, err)
		}
	}
	if c.Standardize {
		cfg.Standardize = true
	}
	if c.MaxDepth != 0 {
		cfg.MaxDepth = c.MaxDepth
	}
	if err := cfg.Validate(); err != nil {
		return nil, newError(configError, "flags", err)
	}
	return cfg, nil
}

// parse reads and parses the named input. The name "-" denotes stdin.
func (e *env) parse(name string) (*dom.Document, error) {
	var data []byte
	var err error
	if name == "-" {
		name = "stdin"
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, newError(inputError, name, err)
	}
	if e.verbose {
		e.log.Printf("read %d bytes from %s", len(data), name)
	}
	if e.cfg.Standardize && len(bytes.TrimSpace(data)) != 0 {
		data, err = hujson.Standardize(data)
		if err != nil {
			return nil, newError(parseError, name, err)
		}
	}

	var msgs jdom.Messages
	p := dom.NewParser(jdom.NewSource(name, bytes.NewReader(data)), &msgs)
	p.SetMaxDepth(e.cfg.MaxDepth)
	doc := dom.New()
	if !p.Parse(doc) {
		return nil, newError(parseError, name, msgs.Err())
	}
	return doc, nil
}

func inputs(files []string) []string {
	if len(files) == 0 {
		return []string{"-"}
	}
	return files
}

type checkCmd struct {
	Files []string `arg:"" optional:"" help:"Input files (default stdin)."`
}

func (c *checkCmd) Run(e *env) error {
	var nbad int
	for _, name := range inputs(c.Files) {
		if _, err := e.parse(name); err != nil {
			e.log.Print(userMessage(err))
			nbad++
		} else if e.verbose {
			e.log.Printf("%s: ok", name)
		}
	}
	if nbad != 0 {
		return newError(parseError, fmt.Sprintf("%d of %d inputs are invalid", nbad, len(inputs(c.Files))), nil)
	}
	return nil
}

type fmtCmd struct {
	Indent       string   `help:"Indentation per nesting level."`
	MaxLineItems int      `help:"Longest array of simple values kept on one line."`
	Compact      bool     `help:"Write compact output with no whitespace."`
	Files        []string `arg:"" optional:"" help:"Input files (default stdin)."`
}

func (c *fmtCmd) Run(e *env) error {
	fc := e.cfg.Format
	if c.Indent != "" {
		fc.Indent = c.Indent
	}
	if c.MaxLineItems != 0 {
		fc.MaxLineItems = c.MaxLineItems
	}
	fc.Compact = fc.Compact || c.Compact
	if err := fc.Validate(); err != nil {
		return newError(configError, "flags", err)
	}
	f := dom.Formatter{Indent: fc.Indent, MaxLineItems: fc.MaxLineItems}

	for _, name := range inputs(c.Files) {
		doc, err := e.parse(name)
		if err != nil {
			return err
		} else if doc.Root() == nil {
			continue // empty input
		}
		if fc.Compact {
			_, err = fmt.Fprintln(e.stdout, doc.Root().JSON())
		} else {
			err = f.Format(e.stdout, doc.Root())
		}
		if err != nil {
			return newError(outputError, name, err)
		}
	}
	return nil
}

type getCmd struct {
	File string   `arg:"" help:"Input file (- for stdin)."`
	Path []string `arg:"" optional:"" help:"Member names and array indices."`
}

func (c *getCmd) Run(e *env) error {
	doc, err := e.parse(c.File)
	if err != nil {
		return err
	} else if doc.Root() == nil {
		return newError(pathError, c.File, fmt.Errorf("input is empty"))
	}
	steps := make([]any, len(c.Path))
	for i, elt := range c.Path {
		steps[i] = pathStep(elt)
	}
	cur := cursor.New(doc.Root()).Down(steps...)
	if err := cur.Err(); err != nil {
		return newError(pathError, c.File, err)
	}
	if err := dom.Format(e.stdout, cur.Value()); err != nil {
		return newError(outputError, c.File, err)
	}
	return nil
}

// pathStep returns a cursor step for the path element s. In an array, s must
// be an index; in an object it names a member.
func pathStep(s string) func(dom.Value) (dom.Value, error) {
	return func(v dom.Value) (dom.Value, error) {
		var elt any = s
		if _, ok := v.(*dom.Array); ok {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("invalid array index %q", s)
			}
			elt = n
		}
		c := cursor.New(v).Down(elt)
		return c.Value(), c.Err()
	}
}
