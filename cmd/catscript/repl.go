package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/catscript/internal/driver"
	"github.com/you-not-fish/catscript/internal/syntax"
)

const (
	historyFile = ".catscript_history"
	promptMain  = "cat> "
	promptCont  = "...> "
)

// prompter reads one line of input after showing a prompt.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// runRepl starts an interactive session on the terminal.
func (c *command) runRepl() int {
	fmt.Fprintf(c.stdout, "CatScript %s (language %s). Type :quit to exit.\n", Version, driver.LanguageVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return c.repl(ln, c.d.NewSession(), ln.AppendHistory)
}

// repl reads inputs from p and evaluates them in s until end of input or
// :quit. Each accepted input is passed to remember.
func (c *command) repl(p prompter, s *driver.Session, remember func(string)) int {
	for {
		src, ok := readInput(p)
		if !ok {
			fmt.Fprintln(c.stdout)
			return exitOK
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if strings.HasPrefix(src, ":") {
			switch strings.ToLower(src) {
			case ":quit", ":q":
				return exitOK
			default:
				fmt.Fprintln(c.stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}

		if err := s.Eval(src); err != nil {
			c.printErrors(err)
			continue
		}
		if remember != nil {
			remember(strings.ReplaceAll(src, "\n", " "))
		}
	}
}

// readInput reads lines until they form an input without an unterminated
// block. It reports false at end of input or when the user aborts.
func readInput(p prompter) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src ends inside an open block.
func incomplete(src string) bool {
	prog := syntax.ParseString(src)
	for _, e := range syntax.Errors(prog) {
		if e.Kind == syntax.UnterminatedBlock {
			return true
		}
	}
	return false
}
