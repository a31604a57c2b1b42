// Package shell runs a line-oriented command prompt on an x/term terminal.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"localstore/internal/logging"
)

var logger = logging.For("shell")

// Run reads command lines from rw until /quit or EOF. The registry is
// frozen first. Input that does not start with "/" is rejected with a hint.
// A clean EOF is not an error.
func Run(rw io.ReadWriter, reg *CommandRegistry, prompt, banner string) error {
	reg.Freeze()
	terminal := term.NewTerminal(rw, prompt)

	if banner != "" {
		_, _ = fmt.Fprintln(terminal, banner)
	}

	for {
		line, err := terminal.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			_, _ = fmt.Fprintln(terminal, "Commands start with / (try /help)")
			continue
		}
		logger.Debug("dispatch", "line", line)
		if reg.Dispatch(line, terminal) {
			return nil
		}
	}
}

// LineInput adapts newline-terminated input (a pipe or file) for Run.
// The terminal only treats '\r' as enter, so '\n' is rewritten to '\r'.
func LineInput(r io.Reader) io.Reader {
	return lineInput{r}
}

type lineInput struct {
	r io.Reader
}

func (l lineInput) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	for i := range p[:n] {
		if p[i] == '\n' {
			p[i] = '\r'
		}
	}
	return n, err
}
