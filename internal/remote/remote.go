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

// Package remote is a thin façade over a peer's RPC surface. The wire
// shape mirrors Duniter's BMA REST API (/blockchain/current,
// /blockchain/blocks, /network/peering, /network/peers): plain
// net/http + encoding/json, since every call here is a bounded
// request/response read rather than a subscription (see DESIGN.md).
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/duniter-go/duniter/internal/chainmodel"
	"github.com/pkg/errors"
)

// Current is the reply to Client.Current.
type Current struct {
	Number  uint64 `json:"number"`
	Version int    `json:"version"`
}

// MerkleParams selects what Client.PeersMerkle returns: a bare
// summary, the list of leaf hashes, or one leaf's full value.
type MerkleParams struct {
	Leaves bool
	Leaf   string // hex hash, when fetching a single leaf
}

// MerkleResult carries whichever of the three shapes MerkleParams asked
// for; exactly one field is populated.
type MerkleResult struct {
	Summary *chainmodel.NodesMerkle
	Leaves  []string
	Leaf    *chainmodel.PeeringEntry
}

// Client is a configured façade over one remote peer, using a single
// long timeout for every call.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client talking to baseURL (e.g. "https://peer.example:443"),
// with every call bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrapf(err, "remote: building request for %s", path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "remote: calling %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("remote: %s returned HTTP %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "remote: decoding response from %s", path)
	}
	return nil
}

// Current returns the remote's chain head number and protocol version.
func (c *Client) Current(ctx context.Context) (Current, error) {
	var cur Current
	err := c.get(ctx, "/blockchain/current", nil, &cur)
	return cur, err
}

// Blocks returns count blocks starting at from, inclusive. The wire
// order is unspecified; Blocks sorts by number before returning,
// saving every caller the work.
func (c *Client) Blocks(ctx context.Context, from, count uint64) ([]chainmodel.Block, error) {
	var blocks []chainmodel.Block
	path := fmt.Sprintf("/blockchain/blocks/%d/%d", count, from)
	if err := c.get(ctx, path, nil, &blocks); err != nil {
		return nil, err
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Number < blocks[j].Number })
	return blocks, nil
}

// Peering returns the remote's own peering entry.
func (c *Client) Peering(ctx context.Context) (chainmodel.PeeringEntry, error) {
	var entry chainmodel.PeeringEntry
	err := c.get(ctx, "/network/peering", nil, &entry)
	return entry, err
}

// PeersMerkleParts satisfies internal/peers.RemoteSource, unpacking
// MerkleResult into the three-way return shape the reconciler expects.
func (c *Client) PeersMerkleParts(ctx context.Context, leaves bool, leaf string) (*chainmodel.NodesMerkle, []string, *chainmodel.PeeringEntry, error) {
	res, err := c.PeersMerkle(ctx, MerkleParams{Leaves: leaves, Leaf: leaf})
	if err != nil {
		return nil, nil, nil, err
	}
	return res.Summary, res.Leaves, res.Leaf, nil
}

// PeersMerkle asks the remote for a Merkle summary, its leaf-hash
// list, or one leaf's value, depending on params.
func (c *Client) PeersMerkle(ctx context.Context, params MerkleParams) (MerkleResult, error) {
	q := url.Values{}
	if params.Leaves {
		q.Set("leaves", "true")
	}
	if params.Leaf != "" {
		q.Set("leaf", params.Leaf)
	}

	switch {
	case params.Leaf != "":
		var entry chainmodel.PeeringEntry
		if err := c.get(ctx, "/network/peers", q, &entry); err != nil {
			return MerkleResult{}, err
		}
		return MerkleResult{Leaf: &entry}, nil
	case params.Leaves:
		var leaves struct {
			Leaves []string `json:"leaves"`
		}
		if err := c.get(ctx, "/network/peers", q, &leaves); err != nil {
			return MerkleResult{}, err
		}
		return MerkleResult{Leaves: leaves.Leaves}, nil
	default:
		var summary chainmodel.NodesMerkle
		if err := c.get(ctx, "/network/peers", q, &summary); err != nil {
			return MerkleResult{}, err
		}
		return MerkleResult{Summary: &summary}, nil
	}
}
