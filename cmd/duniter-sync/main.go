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

// Command duniter-sync drives one blockchain synchronization run
// against a remote peer, exposed as an urfave/cli subcommand.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/duniter-go/duniter/internal/config"
	"github.com/duniter-go/duniter/internal/log"
	"github.com/duniter-go/duniter/internal/remote"
	"github.com/duniter-go/duniter/internal/syncer"
	"github.com/duniter-go/duniter/internal/watcher"
)

func main() {
	app := &cli.App{
		Name:  "duniter-sync",
		Usage: "synchronize a local chain against one remote peer",
		Commands: []*cli.Command{
			syncCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var syncCommand = &cli.Command{
	Name:  "sync",
	Usage: "download, apply and reconcile against a remote peer",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Value: "duniter-sync.toml", Usage: "path to the node's TOML configuration"},
		&cli.StringFlag{Name: "peer", Required: true, Usage: "remote peer base URL, e.g. https://peer.example"},
		&cli.Uint64Flag{Name: "to", Usage: "sync up to this block number (default: remote tip)"},
		&cli.Uint64Flag{Name: "chunk-size", Usage: "override the configured chunk size"},
		&cli.BoolFlag{Name: "cautious", Usage: "force cautious (per-block) application"},
		&cli.BoolFlag{Name: "skip-peers", Usage: "skip peer-table reconciliation"},
	},
	Action: runSync,
}

func runSync(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		log.Root().Warn("falling back to default configuration", "err", err)
		d := config.Defaults()
		cfg = &d
	}

	var opts syncer.Options
	if c.IsSet("to") {
		to := c.Uint64("to")
		opts.To = &to
	}
	if c.IsSet("chunk-size") {
		opts.ChunkSize = c.Uint64("chunk-size")
	}
	if c.IsSet("cautious") {
		cautious := c.Bool("cautious")
		opts.Cautious = &cautious
	}
	opts.SkipPeers = c.Bool("skip-peers")

	rc := remote.New(c.String("peer"), cfg.NetworkSyncLongTimeout)

	var w watcher.Watcher
	if watcher.IsTerminal() {
		w = watcher.NewInteractive()
	} else {
		w = watcher.NewLogging()
	}

	// The ledger and peer-table services are external collaborators
	// this module does not implement: a real deployment wires its own
	// block store and peer table here. This standalone binary is the
	// CLI driver shape; embedding applications call syncer.New
	// directly with their own ledger.Ledger/PeerService.
	orch := syncer.New(rc, rc, nil, nil, w, *cfg)

	sub := orch.Subscribe()
	go traceEvents(sub)
	defer sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(c.Context, 24*time.Hour)
	defer cancel()

	return orch.Sync(ctx, opts)
}

func traceEvents(sub interface {
	Chan() <-chan syncer.Event
}) {
	for ev := range sub.Chan() {
		switch {
		case ev.Download != nil:
			log.Root().Debug("download progress", "percent", *ev.Download)
		case ev.Applied != nil:
			log.Root().Debug("applied progress", "percent", *ev.Applied)
		case ev.Sync != nil:
			log.Root().Info("sync finished", "ok", *ev.Sync, "msg", ev.Msg)
		}
	}
}
