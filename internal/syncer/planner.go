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

import "github.com/duniter-go/duniter/internal/chainmodel"

// PlanChunks tiles (local, remote] into chunks of width chunkSize.
// local is the current local height, or -1 when no chain exists yet.
// Returns nil if remote <= local (the download phase is then a no-op).
func PlanChunks(local int64, remote uint64, chunkSize uint64) []chainmodel.Chunk {
	if chunkSize == 0 {
		chunkSize = 500
	}

	var start uint64
	if local >= 0 {
		start = uint64(local) + 1
	}
	if local >= 0 && remote <= uint64(local) {
		return nil
	}
	var chunks []chainmodel.Chunk
	for first := start; first <= remote; first += chunkSize {
		last := first + chunkSize - 1
		if last > remote {
			last = remote
		}
		chunks = append(chunks, chainmodel.Chunk{First: first, Last: last})
		if last == remote {
			break
		}
	}
	return chunks
}
