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
	"sync"

	"github.com/duniter-go/duniter/internal/log"
)

// Logging emits one log line per strict increase of download% or
// applied%, the non-interactive form used when stdout isn't a TTY.
type Logging struct {
	mu       sync.Mutex
	log      log.Logger
	download int
	applied  int
	ended    bool
}

// NewLogging returns a Logging watcher writing through the package
// root logger.
func NewLogging() *Logging {
	return &Logging{log: log.New("component", "sync")}
}

func (w *Logging) WriteStatus(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.log.Info(text)
}

func (w *Logging) DownloadPercent(pct *int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if pct != nil && *pct > w.download {
		w.download = *pct
		w.log.Info("download progress", "percent", w.download)
	}
	return w.download
}

func (w *Logging) AppliedPercent(pct *int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if pct != nil && *pct > w.applied {
		w.applied = *pct
		w.log.Info("applied progress", "percent", w.applied)
	}
	return w.applied
}

func (w *Logging) End() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ended {
		return
	}
	w.ended = true
	w.log.Info("sync watcher ended")
}
