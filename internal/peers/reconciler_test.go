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

package peers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/ledger"
	"github.com/duniter-go/duniter/internal/watcher"
)

type fakeRemoteSource struct {
	peering   chainmodel.PeeringEntry
	merkle    chainmodel.NodesMerkle
	leaves    []string
	leafByKey map[string]chainmodel.PeeringEntry
}

func (f *fakeRemoteSource) Peering(ctx context.Context) (chainmodel.PeeringEntry, error) {
	return f.peering, nil
}

func (f *fakeRemoteSource) PeersMerkleParts(ctx context.Context, leaves bool, leaf string) (*chainmodel.NodesMerkle, []string, *chainmodel.PeeringEntry, error) {
	if leaf != "" {
		entry := f.leafByKey[leaf]
		return nil, nil, &entry, nil
	}
	if leaves {
		return nil, f.leaves, nil, nil
	}
	m := f.merkle
	return &m, nil, nil, nil
}

type fakeLedger struct {
	merkle chainmodel.NodesMerkle
	leaves []string
}

func (l *fakeLedger) CurrentBlock(ctx context.Context) (*chainmodel.Block, error) { return nil, nil }
func (l *fakeLedger) Block(ctx context.Context, number uint64) (chainmodel.Block, error) {
	return chainmodel.Block{}, nil
}
func (l *fakeLedger) SaveBlocksInMainBranch(ctx context.Context, blocks []chainmodel.Block, remoteTarget uint64) error {
	return nil
}
func (l *fakeLedger) ObsoleteInMainBranch(ctx context.Context, lastBlock chainmodel.Block) error {
	return nil
}
func (l *fakeLedger) SubmitBlock(ctx context.Context, block chainmodel.Block, cautious, forkAllowed bool) (ledger.Ack, error) {
	return ledger.Ack{}, nil
}
func (l *fakeLedger) SaveParametersForRootBlock(ctx context.Context, root chainmodel.Block) error {
	return nil
}
func (l *fakeLedger) MerkleForPeers(ctx context.Context) (chainmodel.NodesMerkle, []string, error) {
	return l.merkle, l.leaves, nil
}

type fakePeerService struct {
	submitted []chainmodel.PeeringEntry
	err       string
}

func (p *fakePeerService) SubmitPeering(ctx context.Context, entry chainmodel.PeeringEntry, verifySignature, eraseIfAlreadyRecorded bool) error {
	if p.err != "" {
		return fmt.Errorf(p.err)
	}
	p.submitted = append(p.submitted, entry)
	return nil
}

func (p *fakePeerService) CheckPeerSignature(ctx context.Context, entry chainmodel.PeeringEntry) (bool, error) {
	return true, nil
}

type noopWatcher struct{}

func (noopWatcher) WriteStatus(string)       {}
func (noopWatcher) DownloadPercent(*int) int { return 0 }
func (noopWatcher) AppliedPercent(*int) int  { return 0 }
func (noopWatcher) End()                     {}

var _ watcher.Watcher = noopWatcher{}

func TestReconciler_EqualRootsFetchesNoLeaves(t *testing.T) {
	root := chainmodel.Hash{1}
	remote := &fakeRemoteSource{merkle: chainmodel.NodesMerkle{Root: root}}
	local := &fakeLedger{merkle: chainmodel.NodesMerkle{Root: root}}
	peerSvc := &fakePeerService{}

	r := &Reconciler{Remote: remote, Peers: peerSvc, Local: local, Watch: noopWatcher{}}
	err := r.Run(context.Background(), true)

	require.NoError(t, err)
	// Only the remote's own peering entry was submitted; no leaf fetch happened.
	assert.Len(t, peerSvc.submitted, 1)
}

func TestReconciler_DiffFetchesOnlyMissingLeaves(t *testing.T) {
	a := chainmodel.PeeringEntry{Pubkey: "a"}
	b := chainmodel.PeeringEntry{Pubkey: "b"}
	c := chainmodel.PeeringEntry{Pubkey: "c"}

	remote := &fakeRemoteSource{
		merkle: chainmodel.NodesMerkle{Root: chainmodel.Hash{9}},
		leaves: []string{"a", "b", "c"},
		leafByKey: map[string]chainmodel.PeeringEntry{
			"b": b, "c": c,
		},
	}
	local := &fakeLedger{
		merkle: chainmodel.NodesMerkle{Root: chainmodel.Hash{1}},
		leaves: []string{"a"},
	}
	peerSvc := &fakePeerService{}

	r := &Reconciler{Remote: remote, Peers: peerSvc, Local: local, Watch: noopWatcher{}}
	err := r.Run(context.Background(), true)
	require.NoError(t, err)

	// The remote's own peering entry, plus exactly the two missing leaves.
	require.Len(t, peerSvc.submitted, 3)
	var pubkeys []string
	for _, e := range peerSvc.submitted {
		pubkeys = append(pubkeys, e.Pubkey)
	}
	assert.Contains(t, pubkeys, "b")
	assert.Contains(t, pubkeys, "c")
	assert.NotContains(t, pubkeys, a.Pubkey)
}

func TestReconciler_ToleratesAlreadyRecorded(t *testing.T) {
	remote := &fakeRemoteSource{merkle: chainmodel.NodesMerkle{Root: chainmodel.Hash{1}}}
	local := &fakeLedger{merkle: chainmodel.NodesMerkle{Root: chainmodel.Hash{1}}}
	peerSvc := &fakePeerService{err: ledger.ErrAlreadyRecorded}

	r := &Reconciler{Remote: remote, Peers: peerSvc, Local: local, Watch: noopWatcher{}}
	err := r.Run(context.Background(), true)
	assert.NoError(t, err)
}

func TestReconciler_PropagatesUnknownPeerServiceError(t *testing.T) {
	remote := &fakeRemoteSource{merkle: chainmodel.NodesMerkle{Root: chainmodel.Hash{1}}}
	local := &fakeLedger{merkle: chainmodel.NodesMerkle{Root: chainmodel.Hash{1}}}
	peerSvc := &fakePeerService{err: "boom"}

	r := &Reconciler{Remote: remote, Peers: peerSvc, Local: local, Watch: noopWatcher{}}
	err := r.Run(context.Background(), true)
	assert.Error(t, err)
}
