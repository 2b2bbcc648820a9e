//go:build windows

package ptyio

import (
	"os/exec"

	"github.com/UserExistsError/conpty"
)

// conptyPTY wraps a ConPTY-backed pseudo console, the modern (Windows 10+)
// primary backend.
type conptyPTY struct {
	cp *conpty.ConPty
}

func start(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	cp, err := conpty.Start(cmd.Path, conpty.ConPtyDimensions(int(cols), int(rows)))
	if err != nil {
		// ConPTY is unavailable (pre-1809 Windows, or blocked by policy):
		// fall back to the winpty-backed legacy implementation.
		return startWinpty(cmd, cols, rows)
	}
	return &conptyPTY{cp: cp}, nil
}

func (p *conptyPTY) Read(b []byte) (int, error)  { return p.cp.Read(b) }
func (p *conptyPTY) Write(b []byte) (int, error) { return p.cp.Write(b) }
func (p *conptyPTY) Close() error                { return p.cp.Close() }

func (p *conptyPTY) Resize(cols, rows uint16) error {
	return p.cp.Resize(int(cols), int(rows))
}
