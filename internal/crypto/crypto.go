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

// Package crypto wraps the one cryptographic primitive the
// synchronization core computes itself: the document hash. Signature
// verification over peering entries is not this package's job; it is
// delegated to the node's own peer service (internal/ledger.PeerService,
// driven by internal/peers.Reconciler) the same way the rest of the
// synchronization core treats ledger validation as an external
// black box.
package crypto

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashUpper returns the uppercase hex blake2b-256 digest of data.
func HashUpper(data []byte) string {
	sum := blake2b.Sum256(data)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
