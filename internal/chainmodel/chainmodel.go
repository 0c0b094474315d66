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

// Package chainmodel holds the wire-level data types shared by the
// synchronization core: blocks, transactions, peering entries and the
// Merkle summaries used for peer-set reconciliation.
package chainmodel

import "encoding/hex"

// HashSize is the length in bytes of a canonical block/transaction/leaf hash.
const HashSize = 32

// Hash is a 32-byte blake2b digest, hex-encoded with a 0x prefix when
// printed.
type Hash [HashSize]byte

// BytesToHash right-aligns b into a Hash, truncating on the left if b is
// longer than HashSize.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashSize {
		b = b[len(b)-HashSize:]
	}
	copy(h[HashSize-len(b):], b)
	return h
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Transaction is one ledger-modifying entry inside a Block.
type Transaction struct {
	Signatories []string
	Inputs      []string
	Outputs     []string
	Comment     string
	HasComment  bool
	Locktime    int64
	Signatures  []string

	// Issuers, Version, Currency and Hash are derived/stamped fields,
	// populated by internal/txcodec before a transaction is submitted
	// in cautious mode. They are left zero on transactions as received
	// from the wire.
	Issuers  []string
	Version  int
	Currency string
	Hash     string
}

// Block is an opaque chain entry: a number, a document version and a
// list of transactions.
type Block struct {
	Number       uint64
	Version      int
	Transactions []Transaction
}

// Chunk is a contiguous, half-open-on-neither-end range of block numbers
// downloaded as a single RPC, together with the blocks once fetched.
type Chunk struct {
	First  uint64
	Last   uint64
	Blocks []Block
}

// Size returns the number of block numbers this chunk covers.
func (c Chunk) Size() uint64 {
	return c.Last - c.First + 1
}

// PeeringEntry identifies a peer: its pubkey, endpoints and a signed
// reference to the block the entry was issued against.
type PeeringEntry struct {
	Version    int
	Currency   string
	Pubkey     string
	Endpoints  []string
	Block      string // canonical "<number>-<hash>" reference, as on the wire
	Signature  string
}

// NodesMerkle is a summary of a peer set: a Merkle root over the sorted
// peering-entry leaves, plus bookkeeping the reconciler does not need
// but that the wire format carries.
type NodesMerkle struct {
	Depth       int
	NodesCount  int
	LeavesCount int
	Root        Hash
}

// Equal reports whether two Merkle summaries describe the same peer set.
func (m NodesMerkle) Equal(other NodesMerkle) bool {
	return m.Root == other.Root
}
