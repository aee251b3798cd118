// Package signal holds the independent completion channels: each one is a
// best-effort way of telling the user the countdown reached zero.
package signal

import "log"

// Channel is a single completion signal.
type Channel interface {
	Name() string
	Announce() error
}

// Silencer is implemented by channels that can cut a signal short.
type Silencer interface {
	Silence()
}

// Preparer is implemented by channels that warm up ahead of the first
// announcement.
type Preparer interface {
	Prepare() error
}

// Broadcaster fans a completion out to every channel. A failing channel never
// blocks the others.
type Broadcaster struct {
	channels []Channel
}

// NewBroadcaster creates a Broadcaster over the given channels.
func NewBroadcaster(channels ...Channel) *Broadcaster {
	return &Broadcaster{channels: channels}
}

// Prepare warms every channel that supports it.
func (broadcaster *Broadcaster) Prepare() {
	for _, channel := range broadcaster.channels {
		preparer, ok := channel.(Preparer)
		if !ok {
			continue
		}
		if err := preparer.Prepare(); err != nil {
			log.Printf("signal: prepare %s: %v", channel.Name(), err)
		}
	}
}

// Announce fires every channel, logging and tolerating individual failures.
func (broadcaster *Broadcaster) Announce() {
	for _, channel := range broadcaster.channels {
		if err := channel.Announce(); err != nil {
			log.Printf("signal: %s: %v", channel.Name(), err)
		}
	}
}

// Silence stops every channel that supports it.
func (broadcaster *Broadcaster) Silence() {
	for _, channel := range broadcaster.channels {
		if silencer, ok := channel.(Silencer); ok {
			silencer.Silence()
		}
	}
}
