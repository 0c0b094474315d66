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

package syncer

import (
	"github.com/duniter-go/duniter/internal/event"
	"github.com/duniter-go/duniter/internal/watcher"
)

// eventWatcher decorates a watcher.Watcher, forwarding every call
// unchanged and additionally publishing a downloadEvent/appliedEvent on
// feed whenever a setter call actually advances the underlying
// percentage. It lets the Download Pipeline and Applier keep reporting
// progress through the plain watcher.Watcher contract while the
// Orchestrator's event stream stays current, without threading an
// event.Feed through either component.
type eventWatcher struct {
	watcher.Watcher
	feed *event.Feed[Event]
}

func (w *eventWatcher) DownloadPercent(pct *int) int {
	if pct == nil {
		return w.Watcher.DownloadPercent(nil)
	}
	before := w.Watcher.DownloadPercent(nil)
	after := w.Watcher.DownloadPercent(pct)
	if after > before {
		w.feed.Send(downloadEvent(after))
	}
	return after
}

func (w *eventWatcher) AppliedPercent(pct *int) int {
	if pct == nil {
		return w.Watcher.AppliedPercent(nil)
	}
	before := w.Watcher.AppliedPercent(nil)
	after := w.Watcher.AppliedPercent(pct)
	if after > before {
		w.feed.Send(appliedEvent(after))
	}
	return after
}
