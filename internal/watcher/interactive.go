// Copyright 2026 The Duniter-Go Authors
// This file is part of the duniter-go/duniter library.
//
// This software is provided "as is", without warranty of any kind,
// express or implied, including but not limited to the warranties
// of merchantability, fitness for a particular purpose and
// noninfringement. In no event shall the authors or copyright
// holders be liable for any claim, damages, or other liability,
// whether in an action of contract, tort or otherwise, arising
// from, out of or in connection with the software or the use or
// other dealings in the software.

package watcher

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const barWidth = 30

// Interactive draws two single-line progress bars and a status line,
// redrawn in place with carriage returns, using fatih/color,
// mattn/go-isatty and mattn/go-colorable for TTY-aware output instead
// of a curses-style library, since the UI surface is three lines, not
// a full-screen dashboard.
type Interactive struct {
	mu       sync.Mutex
	out      io.Writer
	download int
	applied  int
	status   string
	ended    bool
}

// NewInteractive returns an Interactive watcher writing to stdout. Use
// IsTerminal to decide whether this or NewLogging is appropriate for
// the current process.
func NewInteractive() *Interactive {
	return &Interactive{out: colorable.NewColorableStdout()}
}

// IsTerminal reports whether stdout is attached to a real or Cygwin
// terminal, the signal the CLI entrypoint uses to pick between
// Interactive and Logging.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (w *Interactive) WriteStatus(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = text
	w.render()
}

func (w *Interactive) DownloadPercent(pct *int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if pct != nil && *pct > w.download {
		w.download = *pct
		w.render()
	}
	return w.download
}

func (w *Interactive) AppliedPercent(pct *int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if pct != nil && *pct > w.applied {
		w.applied = *pct
		w.render()
	}
	return w.applied
}

func (w *Interactive) End() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ended {
		return
	}
	w.ended = true
	fmt.Fprintln(w.out)
}

// render repaints the two bars and the status line. Caller holds w.mu.
func (w *Interactive) render() {
	if w.ended {
		return
	}
	fmt.Fprintf(w.out, "\r%s %s  %s",
		bar("download", w.download, color.FgCyan),
		bar("applied", w.applied, color.FgGreen),
		w.status)
}

func bar(label string, pct int, c color.Attribute) string {
	filled := pct * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	body := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			body += "="
		} else {
			body += " "
		}
	}
	painted := color.New(c).Sprintf("[%s]", body)
	return fmt.Sprintf("%s %s %3d%%", label, painted, pct)
}
