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

	"github.com/pkg/errors"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/watcher"
)

// ErrCancelled is returned by every handle that resolves after an
// earlier chunk's download failed.
var ErrCancelled = errors.New("syncer: download cancelled")

// chunkResult is what a download handle resolves to.
type chunkResult struct {
	chunk chainmodel.Chunk
	err   error
}

// Pipeline issues chunk fetches with a serialized download schedule
// (chunk i starts only after chunk i-1 completes) and delivers them
// to the applier in strict order over a channel. On
// any error every subsequent chunk resolves to ErrCancelled and no new
// downloads start.
type Pipeline struct {
	remote RemoteClient
	watch  watcher.Watcher
	remoteTarget uint64
}

// NewPipeline returns a Pipeline fetching against remote, reporting
// progress to watch, with remoteTarget used for the download%
// computation.
func NewPipeline(remote RemoteClient, watch watcher.Watcher, remoteTarget uint64) *Pipeline {
	return &Pipeline{remote: remote, watch: watch, remoteTarget: remoteTarget}
}

// Run starts the serialized download schedule in a background
// goroutine and returns a channel delivering one chunkResult per input
// chunk, in order. Once ctx is cancelled, every chunk not yet started
// resolves to ErrCancelled; the channel is closed after the last
// chunk's result.
func (p *Pipeline) Run(ctx context.Context, chunks []chainmodel.Chunk) <-chan chunkResult {
	// Sized to the full input so the background goroutine can always
	// deliver every chunk's result (including the ErrCancelled tail
	// after a failure) without blocking on a consumer that stopped
	// reading after the first error.
	out := make(chan chunkResult, len(chunks))

	go func() {
		defer close(out)

		failed := false
		for _, c := range chunks {
			if failed || ctx.Err() != nil {
				out <- chunkResult{chunk: c, err: ErrCancelled}
				continue
			}

			p.reportStart(c)
			blocks, err := p.remote.Blocks(ctx, c.First, c.Size())
			if err != nil {
				failed = true
				out <- chunkResult{chunk: c, err: errors.Wrapf(err, "syncer: downloading chunk [%d,%d]", c.First, c.Last)}
				continue
			}

			c.Blocks = blocks
			p.reportDone(c)
			out <- chunkResult{chunk: c}
		}
	}()

	return out
}

func (p *Pipeline) reportStart(c chainmodel.Chunk) {
	pct := percentOf(c.First, p.remoteTarget)
	p.watch.DownloadPercent(&pct)
}

func (p *Pipeline) reportDone(c chainmodel.Chunk) {
	pct := percentOf(c.Last, p.remoteTarget)
	p.watch.DownloadPercent(&pct)
}

func percentOf(n, total uint64) int {
	if total == 0 {
		return 100
	}
	return int(n * 100 / total)
}
