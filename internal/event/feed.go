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

// Package event provides a generic feed/subscription pattern, used
// here to back the Orchestrator's lifecycle event stream.
package event

import "sync"

// Feed implements one-to-many notification: a single producer calls
// Send, and every live Subscription receives the value on its channel.
// A Feed must not be copied after first use.
type Feed[T any] struct {
	mu   sync.Mutex
	subs map[*Subscription[T]]struct{}
}

// Subscription represents a single feed listener.
type Subscription[T any] struct {
	feed *Feed[T]
	ch   chan T
	once sync.Once
}

// Subscribe registers a new listener with the feed, with the given
// channel buffer depth.
func (f *Feed[T]) Subscribe(buffer int) *Subscription[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = make(map[*Subscription[T]]struct{})
	}
	sub := &Subscription[T]{feed: f, ch: make(chan T, buffer)}
	f.subs[sub] = struct{}{}
	return sub
}

// Send delivers value to every current subscriber, dropping it for any
// subscriber whose buffer is full rather than blocking the producer.
func (f *Feed[T]) Send(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		select {
		case sub.ch <- value:
		default:
		}
	}
}

// Chan returns the channel values are delivered on.
func (s *Subscription[T]) Chan() <-chan T {
	return s.ch
}

// Unsubscribe removes the subscription from its feed. Safe to call
// more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		delete(s.feed.subs, s)
		s.feed.mu.Unlock()
		close(s.ch)
	})
}
