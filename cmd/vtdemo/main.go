// Command vtdemo drives a real shell behind a pseudo-terminal through
// vtcore's parser/screen/term core and renders the resulting grid to the
// controlling terminal, replacing gopyte's string-capture demo
// (examples/interactive_terminal/main.go) with one that actually exercises
// the byte-stream parser end to end.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/halcyon-term/vtcore/ptyio"
	vtterm "github.com/halcyon-term/vtcore/term"
)

func main() {
	shell := flag.String("shell", defaultShell(), "shell to spawn behind the pty")
	cols := flag.Int("cols", 80, "initial terminal width")
	rows := flag.Int("rows", 24, "initial terminal height")
	flag.Parse()

	logger := log.New(os.Stderr, "vtdemo: ", log.LstdFlags)

	if err := run(*shell, *cols, *rows, logger); err != nil {
		logger.Fatal(err)
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

type stdinReplySink struct {
	w io.Writer
}

func (s stdinReplySink) WriteReply(p []byte) { s.w.Write(p) }

// resizer is implemented by PTY backends that can watch the controlling
// terminal for live size changes (currently the Unix backend via
// SIGWINCH); Windows backends are resized only at startup.
type resizer interface {
	WatchResize(onResize func())
}

func run(shell string, cols, rows int, logger *log.Logger) error {
	fd := int(os.Stdin.Fd())
	if w, h, err := term.GetSize(fd); err == nil {
		cols, rows = w, h
	}

	cmd := exec.Command(shell)
	p, err := ptyio.Start(cmd, uint16(cols), uint16(rows))
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer p.Close()

	tm := vtterm.New(cols, rows, stdinReplySink{w: p})
	tm.SetLogger(logger)

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if rz, ok := p.(resizer); ok {
		rz.WatchResize(func() {
			w, h, err := term.GetSize(fd)
			if err != nil {
				return
			}
			tm.Resize(w, h)
			if err := p.Resize(uint16(w), uint16(h)); err != nil {
				logger.Printf("resizing pty: %v", err)
			}
		})
	}

	go io.Copy(p, os.Stdin)

	buf := make([]byte, 4096)
	for {
		n, err := p.Read(buf)
		if n > 0 {
			tm.Feed(buf[:n])
			render(tm)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading pty: %w", err)
		}
	}
}

// render draws the current grid with a naive full-screen repaint. A real
// UI would diff against the previous frame (style.Diff exists for exactly
// that); this demo favors clarity over efficiency.
func render(tm *vtterm.Terminal) {
	snap := tm.Snapshot()
	var out strings.Builder
	out.WriteString("\x1b[H")
	for _, row := range snap {
		for _, c := range row {
			if c.Width == 0 {
				continue
			}
			if c.Char == 0 {
				out.WriteByte(' ')
				continue
			}
			out.WriteRune(c.Char)
		}
		out.WriteString("\x1b[K\r\n")
	}
	x, y, visible := tm.Cursor()
	fmt.Fprint(os.Stdout, out.String())
	fmt.Fprintf(os.Stdout, "\x1b[%d;%dH", y+1, x+1)
	if visible {
		fmt.Fprint(os.Stdout, "\x1b[?25h")
	} else {
		fmt.Fprint(os.Stdout, "\x1b[?25l")
	}
}
