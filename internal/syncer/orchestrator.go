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

// Package syncer implements the chunk planner, download pipeline,
// applier, speed/ETA estimator, and sync orchestrator: the pipelined
// producer/consumer core that brings a local chain up to parity with
// one remote peer.
package syncer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/config"
	"github.com/duniter-go/duniter/internal/event"
	"github.com/duniter-go/duniter/internal/ledger"
	"github.com/duniter-go/duniter/internal/peers"
	"github.com/duniter-go/duniter/internal/watcher"
)

// ErrProtocolVersion is returned when the remote's UCP version is
// below the minimum supported.
var ErrProtocolVersion = errors.New("syncer: unsupported remote protocol version")

const minRemoteVersion = 2

// State is one node of the orchestrator's sync state machine.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StatePlanning
	StateDownloadingApplying
	StatePeersReconciling
	StateDone
	StateFailed
)

// Options parameterizes one sync(...) call.
type Options struct {
	To         *uint64 // nil means "sync to remote tip"
	ChunkSize  uint64
	Cautious   *bool // nil means "decide from local height"
	SkipPeers  bool
}

// Orchestrator is the top-level state machine composing the watcher,
// remote client, planner, pipeline, applier, estimator and reconciler
// into one sync(...) operation. All per-run state (speed window,
// applied counters, timers) lives on values created fresh inside Sync,
// so a second Sync call never inherits a previous run's window.
type Orchestrator struct {
	Remote RemoteClient
	Peers  peers.RemoteSource
	Ledger ledger.Ledger
	PeerSvc ledger.PeerService
	Watch  watcher.Watcher
	Config config.Config

	state State
	feed  event.Feed[Event]
}

// New returns an Orchestrator ready for one Sync call.
func New(remote RemoteClient, peerSource peers.RemoteSource, l ledger.Ledger, ps ledger.PeerService, w watcher.Watcher, cfg config.Config) *Orchestrator {
	return &Orchestrator{Remote: remote, Peers: peerSource, Ledger: l, PeerSvc: ps, Watch: w, Config: cfg}
}

// Subscribe returns a subscription to the lifecycle event stream.
func (o *Orchestrator) Subscribe() *event.Subscription[Event] {
	return o.feed.Subscribe(16)
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State { return o.state }

// Sync runs one full synchronization: download+apply missing blocks,
// then reconcile the peer table.
func (o *Orchestrator) Sync(ctx context.Context, opts Options) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timerStop := o.startStatusTimer(ctx)
	defer timerStop()

	defer func() {
		if err != nil {
			o.state = StateFailed
			cancel()
			o.Watch.WriteStatus(err.Error())
			o.feed.Send(failureEvent(err.Error()))
		} else {
			o.feed.Send(successEvent())
		}
		o.Watch.End()
	}()

	o.state = StateConnecting
	current, err := o.Remote.Current(ctx)
	if err != nil {
		return errors.Wrap(err, "syncer: connecting to remote")
	}
	if current.Version < minRemoteVersion {
		return errors.Wrapf(ErrProtocolVersion, "remote UCP version is %d", current.Version)
	}

	o.state = StatePlanning
	local, err := o.Ledger.CurrentBlock(ctx)
	if err != nil {
		return errors.Wrap(err, "syncer: reading local height")
	}

	localHeight := int64(-1)
	if local != nil {
		localHeight = int64(local.Number)
	}

	target := current.Number
	if opts.To != nil {
		target = *opts.To
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = uint64(o.Config.ChunkSize)
	}

	cautious := localHeight >= 0
	if opts.Cautious != nil {
		cautious = *opts.Cautious
	}

	chunks := PlanChunks(localHeight, target, chunkSize)

	o.state = StateDownloadingApplying
	if err := o.downloadAndApply(ctx, localHeight, target, cautious, chunks); err != nil {
		return err
	}

	if !opts.SkipPeers {
		o.state = StatePeersReconciling
		recon := &peers.Reconciler{Remote: o.Peers, Peers: o.PeerSvc, Local: o.Ledger, Watch: o.Watch}
		if err := recon.Run(ctx, opts.To == nil); err != nil {
			return errors.Wrap(err, "syncer: reconciling peers")
		}
	}

	o.state = StateDone
	return nil
}

func (o *Orchestrator) downloadAndApply(ctx context.Context, localHeight int64, target uint64, cautious bool, chunks []chainmodel.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	watch := &eventWatcher{Watcher: o.Watch, feed: &o.feed}

	pipeline := NewPipeline(o.Remote, watch, target)
	applier := &Applier{
		Ledger:      o.Ledger,
		Watch:       watch,
		Cautious:    cautious,
		ForkAllowed: o.Config.ForkAllowed,
		DocVersion:  o.Config.DocumentsVersion,
		Currency:    o.Config.Currency,
		Remote:      target,
	}
	estimator := NewEstimator(o.Config.SpeedWindow, chunks[0].Size())

	results := pipeline.Run(ctx, chunks)

	i := 0
	for res := range results {
		if res.err != nil {
			return res.err
		}

		isLast := i == len(chunks)-1
		if err := applier.ApplyChunk(ctx, res.chunk, isLast); err != nil {
			return err
		}
		estimator.Observe(time.Now())
		o.Watch.WriteStatus(o.progressStatus(estimator, localHeight, target, applier.applied))
		i++
	}

	return applier.FinalizeRootBlock(ctx)
}

func (o *Orchestrator) progressStatus(e *Estimator, localHeight int64, target uint64, applied uint64) string {
	return "syncing, ETA " + e.ETA(localHeight, target, applied)
}

// startStatusTimer runs a ticker at the configured eval-remaining
// interval (one second by default) while sync runs. A tick writes
// nothing to the watcher: the status line is rewritten only after each
// chunk applies, in downloadAndApply. Returns a stop function that
// clears the timer exactly once, called both on success and on the
// Failed path.
func (o *Orchestrator) startStatusTimer(ctx context.Context) func() {
	interval := time.Duration(o.Config.EvalRemainingIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				// The per-chunk status line carries the ETA; nothing
				// is written on a tick.
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		ticker.Stop()
		close(done)
	}
}
