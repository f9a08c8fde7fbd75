// Package iostreams provides testable standard stream handles with TTY
// detection, following the GitHub CLI pattern.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// overrides for tests; tri-state: -1 unchecked, 0 false, 1 true
	stdoutTTY int
	stderrTTY int
}

// System returns IOStreams bound to the process streams.
func System() *IOStreams {
	return &IOStreams{
		In:        os.Stdin,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		stdoutTTY: -1,
		stderrTTY: -1,
	}
}

// Test returns IOStreams backed by buffers for command tests.
func Test() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &IOStreams{
		In:     &bytes.Buffer{},
		Out:    out,
		ErrOut: errOut,
	}, out, errOut
}

// IsStdoutTTY reports whether stdout is attached to a terminal.
func (s *IOStreams) IsStdoutTTY() bool {
	if s.stdoutTTY >= 0 {
		return s.stdoutTTY == 1
	}
	if f, ok := s.Out.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsStderrTTY reports whether stderr is attached to a terminal.
func (s *IOStreams) IsStderrTTY() bool {
	if s.stderrTTY >= 0 {
		return s.stderrTTY == 1
	}
	if f, ok := s.ErrOut.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetStdoutTTY overrides TTY detection, for tests.
func (s *IOStreams) SetStdoutTTY(is bool) {
	if is {
		s.stdoutTTY = 1
	} else {
		s.stdoutTTY = 0
	}
}
