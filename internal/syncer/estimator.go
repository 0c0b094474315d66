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
	"fmt"
	"time"
)

// Estimator tracks a sliding window of chunk-completion timestamps and
// derives a blocks/sec speed and a humanized ETA.
type Estimator struct {
	window    int
	chunkSize uint64
	times     []time.Time
}

// NewEstimator returns an Estimator with the given window size W
// (8 when window <= 0) and chunk width C, used as given.
func NewEstimator(window int, chunkSize uint64) *Estimator {
	if window <= 0 {
		window = 8
	}
	return &Estimator{window: window, chunkSize: chunkSize}
}

// Observe records a chunk completion at now, evicting the oldest entry
// once the window is full.
func (e *Estimator) Observe(now time.Time) {
	e.times = append(e.times, now)
	if len(e.times) > e.window {
		e.times = e.times[len(e.times)-e.window:]
	}
}

// Speed returns the current blocks/sec estimate:
// speed = C * (len-1) / max(1, round(span)).
func (e *Estimator) Speed() float64 {
	if len(e.times) < 2 {
		return 0
	}
	span := e.times[len(e.times)-1].Sub(e.times[0]).Seconds()
	rounded := float64(int64(span + 0.5))
	if rounded < 1 {
		rounded = 1
	}
	return float64(e.chunkSize) * float64(len(e.times)-1) / rounded
}

// ETA returns the estimated remaining time to reach remote, given the
// number of blocks applied so far relative to local+1, humanized.
func (e *Estimator) ETA(local int64, remote uint64, applied uint64) string {
	speed := e.Speed()
	if speed <= 0 {
		return "unknown"
	}

	appliedTarget := uint64(local+1) + applied
	if appliedTarget >= remote {
		return "0 seconds"
	}

	seconds := float64(remote-appliedTarget) / speed
	return humanize(time.Duration(seconds * float64(time.Second)))
}

// humanize renders d the way a status line would ("3 minutes", "12
// seconds", "2 hours").
func humanize(d time.Duration) string {
	switch {
	case d < time.Minute:
		secs := int(d.Seconds())
		return pluralize(secs, "second")
	case d < time.Hour:
		mins := int(d.Minutes())
		return pluralize(mins, "minute")
	default:
		hours := int(d.Hours())
		return pluralize(hours, "hour")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
