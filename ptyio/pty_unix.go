//go:build !windows

package ptyio

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// unixPTY wraps creack/pty's master file descriptor and keeps a
// SIGWINCH watcher alive for live terminal resizes.
type unixPTY struct {
	f       *os.File
	winch   chan os.Signal
	stopped chan struct{}
}

func start(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		return nil, err
	}
	p := &unixPTY{f: f, winch: make(chan os.Signal, 1), stopped: make(chan struct{})}
	return p, nil
}

func (p *unixPTY) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *unixPTY) Write(b []byte) (int, error) { return p.f.Write(b) }

func (p *unixPTY) Close() error {
	close(p.stopped)
	signal.Stop(p.winch)
	return p.f.Close()
}

func (p *unixPTY) Resize(cols, rows uint16) error {
	return pty.Setsize(p.f, &pty.Winsize{Cols: cols, Rows: rows})
}

// WatchResize notifies onResize whenever the controlling terminal's size
// changes (SIGWINCH), the standard Unix idiom for live PTY resize
// propagation. Callers that don't run inside a real controlling terminal
// (e.g. tests) simply never see the channel fire.
func (p *unixPTY) WatchResize(onResize func()) {
	signal.Notify(p.winch, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-p.stopped:
				return
			case <-p.winch:
				onResize()
			}
		}
	}()
}
