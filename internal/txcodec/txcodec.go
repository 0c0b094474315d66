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

// Package txcodec rebuilds a transaction's canonical serialized form
// and derives its hash from the documented byte layout.
package txcodec

import (
	"fmt"
	"strings"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/duniter-go/duniter/internal/crypto"
)

// Canonical rebuilds the documented byte layout:
//
//	TX:<doc_version>:<N_sig>:<N_in>:<N_out>:<has_comment>:<locktime>\n
//	<signatory_1>\n … <signatory_N_sig>\n
//	<input_1>\n … <input_N_in>\n
//	<output_1>\n … <output_N_out>\n
//	[<comment>\n]
//	<signature_1>\n … <signature_N_sig>\n
func Canonical(tx chainmodel.Transaction) []byte {
	hasComment := 0
	if tx.HasComment {
		hasComment = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TX:%d:%d:%d:%d:%d:%d\n",
		tx.Version, len(tx.Signatories), len(tx.Inputs), len(tx.Outputs), hasComment, tx.Locktime)

	for _, s := range tx.Signatories {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	for _, in := range tx.Inputs {
		b.WriteString(in)
		b.WriteByte('\n')
	}
	for _, out := range tx.Outputs {
		b.WriteString(out)
		b.WriteByte('\n')
	}
	if tx.HasComment {
		b.WriteString(tx.Comment)
		b.WriteByte('\n')
	}
	for _, sig := range tx.Signatures {
		b.WriteString(sig)
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// Stamp rebuilds the canonical form of tx, stamps version/currency from
// the node's local configuration, copies signatories into issuers and
// computes the uppercase hash: the per-transaction prelude to cautious
// submission.
func Stamp(tx chainmodel.Transaction, docVersion int, currency string) chainmodel.Transaction {
	tx.Version = docVersion
	tx.Currency = currency
	tx.Issuers = append([]string(nil), tx.Signatories...)
	tx.Hash = crypto.HashUpper(Canonical(tx))
	return tx
}

// StampBlock returns a copy of b whose transactions have each been
// passed through Stamp; b's own transaction slice is left unchanged.
func StampBlock(b chainmodel.Block, docVersion int, currency string) chainmodel.Block {
	out := make([]chainmodel.Transaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		out[i] = Stamp(tx, docVersion, currency)
	}
	b.Transactions = out
	return b
}
