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

// Package watcher implements the progress-sink contract: two
// implementations (interactive terminal, logging) behind one
// four-operation interface, sharing no base type. The interface is a
// capability contract, not a type hierarchy.
package watcher

// Watcher is the progress sink consumed by the Orchestrator, Download
// Pipeline and Applier.
type Watcher interface {
	// WriteStatus replaces the current short status line.
	WriteStatus(text string)

	// DownloadPercent is a getter when pct is nil, a monotone setter
	// otherwise: a call with a lower value than previously observed is
	// a no-op, and DownloadPercent always returns the current value.
	DownloadPercent(pct *int) int

	// AppliedPercent has the same getter/setter contract as
	// DownloadPercent.
	AppliedPercent(pct *int) int

	// End flushes/tears down the watcher. Idempotent.
	End()
}
