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

// Package ledger declares the narrow interfaces the synchronization
// core consumes from the persistent ledger (DAL) and the peer service.
// Both are black-box collaborators: this package defines contracts
// only, never an implementation.
package ledger

import (
	"context"

	"github.com/duniter-go/duniter/internal/chainmodel"
)

// Ack is returned by Ledger.SubmitBlock on a successful cautious
// submission.
type Ack struct {
	Forked bool
}

// Ledger is the narrow slice of the block store / DAL the sync core
// drives.
type Ledger interface {
	// CurrentBlock returns the local chain head, or nil if no chain
	// exists yet.
	CurrentBlock(ctx context.Context) (*chainmodel.Block, error)

	// Block returns the local block at the given number.
	Block(ctx context.Context, number uint64) (chainmodel.Block, error)

	// SaveBlocksInMainBranch bulk-inserts blocks in fast mode.
	SaveBlocksInMainBranch(ctx context.Context, blocks []chainmodel.Block, remoteTarget uint64) error

	// ObsoleteInMainBranch lets the ledger perform bulk-mode
	// finalization once the last block of a fast-mode sync is saved.
	ObsoleteInMainBranch(ctx context.Context, lastBlock chainmodel.Block) error

	// SubmitBlock validates and applies a single block in cautious
	// mode. The ledger may accept, reject (non-nil error) or fork
	// (Ack.Forked == true).
	SubmitBlock(ctx context.Context, block chainmodel.Block, cautious, forkAllowed bool) (Ack, error)

	// SaveParametersForRootBlock makes currency parameters carried by
	// the root block (number 0) effective.
	SaveParametersForRootBlock(ctx context.Context, root chainmodel.Block) error

	// MerkleForPeers returns the local summary of the peer set together
	// with its leaf hashes, used by the reconciler to compare roots and,
	// on mismatch, compute the set difference against the remote's
	// leaves.
	MerkleForPeers(ctx context.Context) (chainmodel.NodesMerkle, []string, error)
}

// Sentinel error strings returned by PeerService.SubmitPeering that the
// reconciler treats as non-fatal.
const (
	ErrAlreadyRecorded      = "ALREADY_RECORDED"
	ErrUnknownReferenceBlock = "UNKNOWN_REFERENCE_BLOCK"
)

// PeerService is the narrow slice of the local peer table the
// reconciler drives.
type PeerService interface {
	// SubmitPeering records a signed peering entry. An error whose
	// message equals one of the sentinel strings above is swallowed
	// by the reconciler.
	SubmitPeering(ctx context.Context, entry chainmodel.PeeringEntry, verifySignature, eraseIfAlreadyRecorded bool) error

	// CheckPeerSignature reports whether entry's signature verifies
	// against its own pubkey.
	CheckPeerSignature(ctx context.Context, entry chainmodel.PeeringEntry) (bool, error)
}
