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

// Package peers implements Merkle-tree peer-set reconciliation: fetch
// only the leaves the local side lacks, then submit each to the local
// peer service.
package peers

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/ledger"
	"github.com/duniter-go/duniter/internal/watcher"
)

// RemoteSource is the slice of the remote client the reconciler needs.
type RemoteSource interface {
	Peering(ctx context.Context) (chainmodel.PeeringEntry, error)
	PeersMerkleParts(ctx context.Context, leaves bool, leaf string) (summary *chainmodel.NodesMerkle, leafList []string, leafValue *chainmodel.PeeringEntry, err error)
}

// Reconciler runs the post-block-phase peer reconciliation step.
type Reconciler struct {
	Remote RemoteSource
	Peers  ledger.PeerService
	Local  ledger.Ledger
	Watch  watcher.Watcher
}

// Run records the remote's own peering entry, then reconciles the peer
// set if it differs from the local one. toTip is true when this is a
// full sync to the remote's current tip, in which case an
// already-recorded remote entry is erased and replaced rather than
// left alone.
func (r *Reconciler) Run(ctx context.Context, toTip bool) error {
	if err := r.recordRemotePeering(ctx, toTip); err != nil {
		return err
	}
	return r.reconcilePeerSet(ctx, toTip)
}

func (r *Reconciler) recordRemotePeering(ctx context.Context, toTip bool) error {
	entry, err := r.Remote.Peering(ctx)
	if err != nil {
		return errors.Wrap(err, "peers: fetching remote peering entry")
	}

	if ok, err := r.Peers.CheckPeerSignature(ctx, entry); err != nil || !ok {
		// A missing/bad signature is a status message, not an abort:
		// the submit attempt still proceeds.
		r.Watch.WriteStatus("remote peering entry has a missing or invalid signature")
	}

	err = r.Peers.SubmitPeering(ctx, entry, true, toTip)
	return swallowKnownPeerErrors(err)
}

func (r *Reconciler) reconcilePeerSet(ctx context.Context, toTip bool) error {
	local, localLeaves, err := r.Local.MerkleForPeers(ctx)
	if err != nil {
		return errors.Wrap(err, "peers: computing local peer merkle")
	}

	remoteSummary, _, _, err := r.Remote.PeersMerkleParts(ctx, false, "")
	if err != nil {
		return errors.Wrap(err, "peers: fetching remote peer merkle")
	}

	if remoteSummary != nil && remoteSummary.Equal(local) {
		r.Watch.WriteStatus("Peers already known")
		return nil
	}

	_, remoteLeaves, _, err := r.Remote.PeersMerkleParts(ctx, true, "")
	if err != nil {
		return errors.Wrap(err, "peers: fetching remote peer leaves")
	}

	missing := mapset.NewSet(remoteLeaves...).Difference(mapset.NewSet(localLeaves...))
	for _, leafHash := range missing.ToSlice() {
		_, _, leafValue, err := r.Remote.PeersMerkleParts(ctx, false, leafHash)
		if err != nil {
			return errors.Wrapf(err, "peers: fetching leaf %s", leafHash)
		}

		err = r.Peers.SubmitPeering(ctx, *leafValue, true, toTip)
		if err = swallowKnownPeerErrors(err); err != nil {
			return errors.Wrapf(err, "peers: submitting leaf %s", leafHash)
		}
	}
	return nil
}

func swallowKnownPeerErrors(err error) error {
	if err == nil {
		return nil
	}
	msg := errors.Cause(err).Error()
	if msg == ledger.ErrAlreadyRecorded || msg == ledger.ErrUnknownReferenceBlock {
		return nil
	}
	return err
}
