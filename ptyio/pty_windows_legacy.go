//go:build windows

package ptyio

import (
	"os/exec"

	winpty "github.com/iamacarpet/go-winpty"
)

// winptyPTY is the fallback PTY backend for Windows versions without
// ConPTY support.
type winptyPTY struct {
	wp *winpty.WinPTY
}

func startWinpty(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	opts := &winpty.Options{
		DLLPrefix: ".",
		Command:   cmd.String(),
		Dir:       cmd.Dir,
		Env:       cmd.Env,
	}
	wp, err := winpty.OpenWithOptions(*opts)
	if err != nil {
		return nil, err
	}
	wp.SetSize(uint32(cols), uint32(rows))
	return &winptyPTY{wp: wp}, nil
}

func (p *winptyPTY) Read(b []byte) (int, error)  { return p.wp.StdOut.Read(b) }
func (p *winptyPTY) Write(b []byte) (int, error) { return p.wp.StdIn.Write(b) }
func (p *winptyPTY) Close() error                { return p.wp.Close() }

func (p *winptyPTY) Resize(cols, rows uint16) error {
	p.wp.SetSize(uint32(cols), uint32(rows))
	return nil
}
