// Package main implements the catscript command: it runs, checks, formats
// and translates CatScript programs.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/driver"
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/transpile"
)

// Version information
const Version = "0.1.0-dev"

// Exit codes
const (
	exitOK    = 0
	exitError = 1 // static or runtime error
	exitUsage = 2 // bad flags or configuration
)

// options holds the command-line flags.
type options struct {
	backend    string
	expr       string
	emitTokens bool
	emitAST    bool
	astFormat  string
	emitBC     bool
	emitJS     bool
	format     bool
	check      bool
	watch      bool
	repl       bool
	config     string
	logLevel   string
	version    bool
}

// command is one invocation of catscript.
type command struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
	conf   *driver.Config
	d      *driver.Driver
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("catscript", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.backend, "backend", "", "Backend for running: eval, bytecode or javascript (default from config)")
	fs.StringVar(&opts.expr, "e", "", "Run source given on the command line")
	fs.BoolVar(&opts.emitTokens, "emit-tokens", false, "Output token stream")
	fs.BoolVar(&opts.emitAST, "emit-ast", false, "Output AST")
	fs.StringVar(&opts.astFormat, "ast-format", "text", "AST output format (text or json)")
	fs.BoolVar(&opts.emitBC, "emit-bytecode", false, "Output bytecode disassembly")
	fs.BoolVar(&opts.emitJS, "emit-js", false, "Output JavaScript")
	fs.BoolVar(&opts.format, "fmt", false, "Output canonical CatScript source")
	fs.BoolVar(&opts.check, "check", false, "Validate all files concurrently and report errors")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run when an input file changes")
	fs.BoolVar(&opts.repl, "repl", false, "Start an interactive session")
	fs.StringVar(&opts.config, "config", "", "Configuration file (default ./"+driver.ConfigFile+" if present)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&opts.version, "version", false, "Print version")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "CatScript %s\n\n", Version)
		fmt.Fprintf(stderr, "Usage: catscript [options] <file.cat>...\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "catscript version %s\n", Version)
		fmt.Fprintf(stdout, "language version %s\n", driver.LanguageVersion)
		fmt.Fprintf(stdout, "go version %s\n", runtime.Version())
		return exitOK
	}

	c := &command{opts: opts, stdout: stdout, stderr: stderr}
	if err := c.configure(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if opts.repl {
		return c.runRepl()
	}

	files := fs.Args()
	if opts.expr != "" {
		if len(files) > 0 {
			fmt.Fprintln(stderr, "error: -e cannot be combined with input files")
			return exitUsage
		}
		return c.process("<expr>", []byte(opts.expr))
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "error: no input file")
		fmt.Fprintln(stderr, "usage: catscript [options] <file.cat>...")
		return exitUsage
	}

	switch {
	case opts.check:
		return c.runCheck(files)
	case opts.watch:
		ctx, stop := signalContext()
		defer stop()
		return c.runWatch(ctx, files, nil)
	}
	return c.runFiles(files)
}

// configure loads the configuration file and applies flag overrides.
func (c *command) configure() error {
	var conf *driver.Config
	var err error
	if c.opts.config != "" {
		conf, err = driver.LoadConfig(c.opts.config)
	} else {
		conf, err = driver.FindConfig(".")
	}
	if err != nil {
		return err
	}
	if c.opts.backend != "" {
		conf.Backend = driver.Backend(c.opts.backend)
	}
	if c.opts.logLevel != "" {
		conf.LogLevel = c.opts.logLevel
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	switch c.opts.astFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown AST format %q (want text or json)", c.opts.astFormat)
	}

	log, err := driver.NewLogger(conf.LogLevel, c.stderr)
	if err != nil {
		return err
	}
	c.conf = conf
	c.d = driver.New(conf, c.stdout, log)
	return nil
}

// runFiles processes each file in turn and returns the worst exit code.
func (c *command) runFiles(files []string) int {
	code := exitOK
	for _, filename := range files {
		src, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(c.stderr, "error: %v\n", err)
			code = exitError
			continue
		}
		if rc := c.process(filename, src); rc > code {
			code = rc
		}
	}
	return code
}

// process runs the mode selected by the flags on one source.
func (c *command) process(filename string, src []byte) int {
	switch {
	case c.opts.emitTokens:
		return c.runEmitTokens(filename, src)
	case c.opts.emitAST:
		return c.runEmitAST(filename, src)
	}

	prog, err := c.d.Compile(filename, bytes.NewReader(src))
	if err != nil {
		c.printErrors(err)
		return exitError
	}

	var out string
	switch {
	case c.opts.emitBC:
		class, err := c.d.Bytecode(prog)
		if err != nil {
			c.printErrors(err)
			return exitError
		}
		bytecode.Fprint(c.stdout, class)
		return exitOK
	case c.opts.emitJS:
		out, err = transpile.JavaScript(prog)
	case c.opts.format:
		out, err = transpile.CatScript(prog)
	default:
		err = c.d.Run(prog, c.conf.Backend)
	}
	if err != nil {
		c.printErrors(err)
		return exitError
	}
	if _, err := io.WriteString(c.stdout, out); err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

// runCheck validates files concurrently and prints every error.
func (c *command) runCheck(files []string) int {
	results, err := c.d.CheckFiles(context.Background(), files)
	if err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return exitError
	}
	code := exitOK
	for _, r := range results {
		if len(r.Errors) > 0 {
			c.printErrors(r.Errors)
			code = exitError
		}
	}
	return code
}

// runEmitAST parses the source and outputs the AST.
func (c *command) runEmitAST(filename string, src []byte) int {
	var errs []string
	errh := func(err *syntax.Error) {
		errs = append(errs, err.Error())
	}
	prog := syntax.Parse(filename, bytes.NewReader(src), errh)

	for _, e := range errs {
		fmt.Fprintln(c.stderr, e)
	}

	switch c.opts.astFormat {
	case "json":
		if err := syntax.FprintJSON(c.stdout, prog); err != nil {
			fmt.Fprintf(c.stderr, "error: %v\n", err)
			return exitError
		}
	default:
		syntax.Fprint(c.stdout, prog)
	}

	if len(errs) > 0 {
		return exitError
	}
	return exitOK
}

// runEmitTokens scans the source and prints all tokens with positions.
func (c *command) runEmitTokens(filename string, src []byte) int {
	var errs []string
	errh := func(line, col uint32, msg string) {
		errs = append(errs, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, bytes.NewReader(src), errh)

	fmt.Fprintf(c.stdout, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(c.stdout, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Fprintf(c.stdout, "%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errs) > 0 {
		fmt.Fprintln(c.stdout)
		fmt.Fprintln(c.stdout, "Errors:")
		for _, e := range errs {
			fmt.Fprintf(c.stdout, "  %s\n", e)
		}
		return exitError
	}
	return exitOK
}

// printErrors writes a static-error list one error per line, or any other
// error with an "error:" prefix.
func (c *command) printErrors(err error) {
	var list syntax.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			fmt.Fprintln(c.stderr, e)
		}
		return
	}
	fmt.Fprintf(c.stderr, "error: %v\n", err)
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
