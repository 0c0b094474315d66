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

package txcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duniter-go/duniter/internal/chainmodel"
)

func sampleTx() chainmodel.Transaction {
	return chainmodel.Transaction{
		Signatories: []string{"ABC", "DEF"},
		Inputs:      []string{"100:0:T:H1:1"},
		Outputs:     []string{"100:0:SIG(ABC)"},
		Comment:     "thanks",
		HasComment:  true,
		Locktime:    0,
		Signatures:  []string{"sig1", "sig2"},
	}
}

func TestCanonical_ExactLayout(t *testing.T) {
	tx := sampleTx()
	got := string(Canonical(tx))
	want := "TX:0:2:1:1:1:0\n" +
		"ABC\nDEF\n" +
		"100:0:T:H1:1\n" +
		"100:0:SIG(ABC)\n" +
		"thanks\n" +
		"sig1\nsig2\n"
	assert.Equal(t, want, got)
}

func TestCanonical_NoCommentOmitsLine(t *testing.T) {
	tx := sampleTx()
	tx.HasComment = false
	tx.Comment = ""
	got := string(Canonical(tx))
	assert.NotContains(t, got, "thanks")
}

// TestStamp_HashIdempotence checks that rebuilding and hashing a
// transaction twice yields the same uppercase hex string.
func TestStamp_HashIdempotence(t *testing.T) {
	tx := sampleTx()
	first := Stamp(tx, 10, "g1")
	second := Stamp(tx, 10, "g1")

	assert.Equal(t, first.Hash, second.Hash)
	assert.NotEmpty(t, first.Hash)
	assert.Equal(t, first.Hash, strings.ToUpper(first.Hash))
}

func TestStamp_CopiesIssuersFromSignatories(t *testing.T) {
	tx := sampleTx()
	stamped := Stamp(tx, 10, "g1")
	assert.Equal(t, tx.Signatories, stamped.Issuers)
}
