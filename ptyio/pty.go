// Package ptyio is the narrow peripheral collaborator spec.md §1 carves
// out of the core: spawning a child process behind a pseudo-terminal and
// shuttling bytes to/from it. The core (parser/screen/term) never imports
// this package; cmd/vtdemo wires the two together.
package ptyio

import (
	"io"
	"os/exec"
)

// PTY is the narrow interface every platform backend implements, shaped
// after the pack's own PTY abstractions (e.g. the keystorm terminal
// package's PTY interface).
type PTY interface {
	io.ReadWriteCloser
	// Resize notifies the pseudo-terminal of a new column/row count.
	Resize(cols, rows uint16) error
}

// Start spawns cmd attached to a new pseudo-terminal sized cols×rows. The
// concrete backend is chosen per-platform at compile time: creack/pty on
// Unix, ConPTY (falling back to winpty) on Windows.
func Start(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	return start(cmd, cols, rows)
}
