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
	"sort"

	"github.com/pkg/errors"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/ledger"
	"github.com/duniter-go/duniter/internal/txcodec"
	"github.com/duniter-go/duniter/internal/watcher"
)

// ErrLedgerRejected wraps a ledger rejection in cautious mode.
var ErrLedgerRejected = errors.New("syncer: ledger rejected block")

// Applier drives the two block application modes (cautious,
// per-block; fast, bulk) behind one ApplyChunk entry point that
// branches on Cautious, rather than behind separate polymorphic
// implementations.
type Applier struct {
	Ledger      ledger.Ledger
	Watch       watcher.Watcher
	Cautious    bool
	ForkAllowed bool
	DocVersion  int
	Currency    string
	Remote      uint64

	applied    uint64
	appliedPct int
}

// ApplyChunk sorts the chunk's blocks ascending by number and submits
// them per the active mode. isLast/isLastChunk tells fast mode whether
// to run the post-pass finalization.
func (a *Applier) ApplyChunk(ctx context.Context, c chainmodel.Chunk, isLastChunk bool) error {
	sort.Slice(c.Blocks, func(i, j int) bool { return c.Blocks[i].Number < c.Blocks[j].Number })

	if a.Cautious {
		return a.applyCautious(ctx, c)
	}
	return a.applyFast(ctx, c, isLastChunk)
}

func (a *Applier) applyCautious(ctx context.Context, c chainmodel.Chunk) error {
	for _, block := range c.Blocks {
		block = txcodec.StampBlock(block, a.DocVersion, a.Currency)

		_, err := a.Ledger.SubmitBlock(ctx, block, true, a.ForkAllowed)
		if err != nil {
			return errors.Wrapf(ErrLedgerRejected, "block %d: %v", block.Number, err)
		}

		a.applied++
		a.bumpAppliedPercent(block.Number)
	}
	return nil
}

func (a *Applier) applyFast(ctx context.Context, c chainmodel.Chunk, isLastChunk bool) error {
	if err := a.Ledger.SaveBlocksInMainBranch(ctx, c.Blocks, a.Remote); err != nil {
		return errors.Wrapf(err, "syncer: saving chunk [%d,%d] in main branch", c.First, c.Last)
	}

	a.applied += uint64(len(c.Blocks))
	if len(c.Blocks) > 0 {
		a.bumpAppliedPercent(c.Blocks[len(c.Blocks)-1].Number)
	}

	if isLastChunk && len(c.Blocks) > 0 {
		last := c.Blocks[len(c.Blocks)-1]
		if err := a.Ledger.ObsoleteInMainBranch(ctx, last); err != nil {
			return errors.Wrap(err, "syncer: finalizing main branch")
		}
	}
	return nil
}

func (a *Applier) bumpAppliedPercent(number uint64) {
	pct := percentOf(number, a.Remote)
	if pct > a.appliedPct {
		a.appliedPct = pct
		a.Watch.AppliedPercent(&pct)
	}
}

// FinalizeRootBlock fetches local block 0 and saves its currency
// parameters, run once after all chunks have applied in either mode.
func (a *Applier) FinalizeRootBlock(ctx context.Context) error {
	root, err := a.Ledger.Block(ctx, 0)
	if err != nil {
		return errors.Wrap(err, "syncer: fetching root block")
	}
	return errors.Wrap(a.Ledger.SaveParametersForRootBlock(ctx, root), "syncer: saving root block parameters")
}
