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
	"fmt"
	"sync"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/ledger"
	"github.com/duniter-go/duniter/internal/remote"
)

// fakeRemote is an in-memory RemoteClient + peers.RemoteSource backing
// a deterministic chain of empty blocks, with an optional injected
// failure at a given block number.
type fakeRemote struct {
	version   int
	tip       uint64
	failAt    uint64 // 0 means never fail
	peering   chainmodel.PeeringEntry
	merkle    chainmodel.NodesMerkle
	leaves    []string
	leafByKey map[string]chainmodel.PeeringEntry
}

func (f *fakeRemote) Current(ctx context.Context) (remote.Current, error) {
	return remote.Current{Number: f.tip, Version: f.version}, nil
}

func (f *fakeRemote) Blocks(ctx context.Context, from, count uint64) ([]chainmodel.Block, error) {
	if f.failAt != 0 && from <= f.failAt && f.failAt < from+count {
		return nil, fmt.Errorf("simulated network failure at block %d", f.failAt)
	}
	blocks := make([]chainmodel.Block, 0, count)
	for n := from; n < from+count; n++ {
		blocks = append(blocks, chainmodel.Block{Number: n, Version: 10})
	}
	return blocks, nil
}

func (f *fakeRemote) Peering(ctx context.Context) (chainmodel.PeeringEntry, error) {
	return f.peering, nil
}

func (f *fakeRemote) PeersMerkleParts(ctx context.Context, leaves bool, leaf string) (*chainmodel.NodesMerkle, []string, *chainmodel.PeeringEntry, error) {
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

// fakeLedger is an in-memory ledger.Ledger recording every submission
// it receives, for asserting coverage/ordering/mode-selection
// invariants.
type fakeLedger struct {
	mu sync.Mutex

	head *chainmodel.Block

	submitted        []uint64 // cautious submissions, in order
	bulkSaved        [][]uint64
	obsoleteCalled   []uint64
	rootSaved        bool
	localLeaves      []string
	localMerkle      chainmodel.NodesMerkle
	rejectAt         uint64
}

func (l *fakeLedger) CurrentBlock(ctx context.Context) (*chainmodel.Block, error) {
	return l.head, nil
}

func (l *fakeLedger) Block(ctx context.Context, number uint64) (chainmodel.Block, error) {
	return chainmodel.Block{Number: number}, nil
}

func (l *fakeLedger) SaveBlocksInMainBranch(ctx context.Context, blocks []chainmodel.Block, remoteTarget uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var nums []uint64
	for _, b := range blocks {
		nums = append(nums, b.Number)
	}
	l.bulkSaved = append(l.bulkSaved, nums)
	return nil
}

func (l *fakeLedger) ObsoleteInMainBranch(ctx context.Context, lastBlock chainmodel.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.obsoleteCalled = append(l.obsoleteCalled, lastBlock.Number)
	return nil
}

func (l *fakeLedger) SubmitBlock(ctx context.Context, block chainmodel.Block, cautious, forkAllowed bool) (ledger.Ack, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rejectAt != 0 && block.Number == l.rejectAt {
		return ledger.Ack{}, fmt.Errorf("block %d rejected by ledger", block.Number)
	}
	l.submitted = append(l.submitted, block.Number)
	return ledger.Ack{}, nil
}

func (l *fakeLedger) SaveParametersForRootBlock(ctx context.Context, root chainmodel.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rootSaved = true
	return nil
}

func (l *fakeLedger) MerkleForPeers(ctx context.Context) (chainmodel.NodesMerkle, []string, error) {
	return l.localMerkle, l.localLeaves, nil
}

// fakePeerService is an in-memory ledger.PeerService.
type fakePeerService struct {
	mu        sync.Mutex
	submitted []chainmodel.PeeringEntry
	knownErr  string // returned for every SubmitPeering call when non-empty
}

func (p *fakePeerService) SubmitPeering(ctx context.Context, entry chainmodel.PeeringEntry, verifySignature, eraseIfAlreadyRecorded bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.knownErr != "" {
		return fmt.Errorf(p.knownErr)
	}
	p.submitted = append(p.submitted, entry)
	return nil
}

func (p *fakePeerService) CheckPeerSignature(ctx context.Context, entry chainmodel.PeeringEntry) (bool, error) {
	return true, nil
}
