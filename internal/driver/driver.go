// Package driver wires the CatScript front end to its backends: it loads the
// configuration, parses and validates source files, and runs the result on
// the evaluator, the bytecode VM or the JavaScript transpiler.
package driver

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/codegen"
	"github.com/you-not-fish/catscript/internal/eval"
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/transpile"
	"github.com/you-not-fish/catscript/internal/types2"
	"github.com/you-not-fish/catscript/internal/vm"
)

// Driver runs the compilation pipeline under one configuration.
type Driver struct {
	conf   *Config
	stdout io.Writer
	log    *slog.Logger
}

// New returns a driver. A nil conf means DefaultConfig, a nil stdout means
// os.Stdout, and a nil logger discards output.
func New(conf *Config, stdout io.Writer, log *slog.Logger) *Driver {
	if conf == nil {
		conf = DefaultConfig()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if log == nil {
		log = discardLogger()
	}
	return &Driver{conf: conf, stdout: stdout, log: log}
}

// Config returns the driver's configuration.
func (d *Driver) Config() *Config { return d.conf }

// Compile parses and validates src. The tree is always returned; when it
// carries errors the error is the syntax.ErrorList of all of them.
func (d *Driver) Compile(filename string, src io.Reader) (*syntax.Program, error) {
	start := time.Now()
	prog := syntax.Parse(filename, src, nil)
	d.log.Debug("parse", "file", filename, "errors", len(syntax.Errors(prog)), "duration", time.Since(start))

	start = time.Now()
	types2.Check(prog, nil)
	errs := syntax.Errors(prog)
	d.log.Debug("check", "file", filename, "errors", len(errs), "duration", time.Since(start))
	if len(errs) > 0 {
		return prog, errs
	}
	return prog, nil
}

// CompileFile is Compile for a file on disk.
func (d *Driver) CompileFile(path string) (*syntax.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.Compile(path, bytes.NewReader(src))
}

// Bytecode lowers a validated program to a class named by the configuration.
func (d *Driver) Bytecode(prog *syntax.Program) (*bytecode.Class, error) {
	start := time.Now()
	class, err := codegen.Compile(prog, &codegen.Config{
		ClassName: d.conf.ClassName,
		Logger:    d.log,
	})
	d.log.Debug("codegen", "class", d.conf.ClassName, "duration", time.Since(start), "err", err)
	return class, err
}

// Run executes a validated program on backend. Expression programs print
// their value.
func (d *Driver) Run(prog *syntax.Program, backend Backend) error {
	start := time.Now()
	defer func() {
		d.log.Debug("run", "backend", backend, "duration", time.Since(start))
	}()

	switch backend {
	case BackendEval:
		in := eval.New(d.evalConfig())
		v, err := in.Run(prog)
		if err != nil {
			return err
		}
		if prog.IsExpression() {
			return d.printResult(eval.Format(v))
		}
		return nil

	case BackendBytecode:
		class, err := d.Bytecode(prog)
		if err != nil {
			return err
		}
		m, err := vm.New(class, &vm.Config{
			Stdout:   d.stdout,
			Logger:   d.log,
			MaxSteps: d.conf.MaxSteps,
			MaxDepth: d.conf.MaxDepth,
		})
		if err != nil {
			return err
		}
		if prog.IsExpression() {
			v, err := m.Evaluate()
			if err != nil {
				return err
			}
			return d.printResult(vm.Format(v))
		}
		return m.Execute()

	case BackendJavaScript:
		js, err := transpile.JavaScript(prog)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(d.stdout, js); err != nil {
			return fmt.Errorf("write javascript: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown backend %q", backend)
}

func (d *Driver) evalConfig() *eval.Config {
	return &eval.Config{
		Stdout:   d.stdout,
		Logger:   d.log,
		MaxSteps: d.conf.MaxSteps,
		MaxDepth: d.conf.MaxDepth,
	}
}

// printResult writes the value of an expression program.
func (d *Driver) printResult(s string) error {
	if _, err := fmt.Fprintln(d.stdout, s); err != nil {
		return fmt.Errorf("print result: %w", err)
	}
	return nil
}

// RunFile compiles path and runs it on the configured backend.
func (d *Driver) RunFile(path string) error {
	prog, err := d.CompileFile(path)
	if err != nil {
		return err
	}
	return d.Run(prog, d.conf.Backend)
}
