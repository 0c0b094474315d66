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
	"context"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/remote"
)

// RemoteClient is the slice of internal/remote.Client the orchestrator
// and pipeline depend on, narrowed to an interface so tests can supply
// a fake.
type RemoteClient interface {
	Current(ctx context.Context) (remote.Current, error)
	Blocks(ctx context.Context, from, count uint64) ([]chainmodel.Block, error)
}

// Event is one entry of the lifecycle event stream emitted by the
// Orchestrator.
type Event struct {
	Download *int
	Applied  *int
	Sync     *bool
	Msg      string
}

func downloadEvent(pct int) Event { return Event{Download: &pct} }
func appliedEvent(pct int) Event  { return Event{Applied: &pct} }

func successEvent() Event {
	ok := true
	return Event{Sync: &ok}
}

func failureEvent(msg string) Event {
	ok := false
	return Event{Sync: &ok, Msg: msg}
}
