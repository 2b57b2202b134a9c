/*
Package board holds the single shared board document and the registry of live
connections it is replicated to.

One mutex guards both the registry and the document: a state update replaces the
whole document and is queued to every registered peer, including its sender, before
the lock is released, so all peers observe updates in the order the board applied
them. Peers whose delivery fails are collected during the fan-out and removed once
it completes.
*/
package board

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"boardroom/internal/metrics"
	"boardroom/internal/pkg/logx"
)

// ErrClosed is returned by Join after Close.
var ErrClosed = errors.New("board is closed")

// Peer is one registered connection. Send must not block; an error marks the peer dead.
type Peer interface {
	ID() string
	Send(msg []byte) error
	Close()
}

// Board is the process-wide shared document and its connection registry.
type Board struct {
	mu     sync.Mutex
	state  State
	peers  map[string]Peer
	closed bool

	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New returns an empty board. m may be nil.
func New(m *metrics.Metrics) *Board {
	return &Board{
		state:   State{}.normalize(),
		peers:   make(map[string]Peer),
		metrics: m,
		logger:  logx.Component("board"),
	}
}

// Join registers p and queues the current document as its first message.
func (b *Board) Join(p Peer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	snapshot, err := encodeState(b.state)
	if err != nil {
		return err
	}
	if err := p.Send(snapshot); err != nil {
		return err
	}

	b.peers[p.ID()] = p
	b.setConnectionsLocked()

	b.logger.Info().
		Str("conn_id", p.ID()).
		Int("total_connections", len(b.peers)).
		Msg("Connection joined board.")

	return nil
}

// Leave unregisters p. It is safe to call more than once.
func (b *Board) Leave(p Peer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.peers[p.ID()]; !ok || cur != p {
		return
	}

	delete(b.peers, p.ID())
	b.setConnectionsLocked()

	b.logger.Info().
		Str("conn_id", p.ID()).
		Int("total_connections", len(b.peers)).
		Msg("Connection left board.")
}

// HandleMessage dispatches one inbound frame from p. Unknown kinds and undecodable
// frames are ignored.
func (b *Board) HandleMessage(p Peer, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.logger.Debug().Err(err).Str("conn_id", p.ID()).Msg("Ignoring malformed frame.")
		return
	}

	switch env.Type {
	case TypeState:
		s, err := decodeState(env.Payload)
		if err != nil {
			b.logger.Debug().Err(err).Str("conn_id", p.ID()).Msg("Ignoring malformed state payload.")
			return
		}
		b.Apply(s)

	default:
		b.logger.Debug().
			Str("conn_id", p.ID()).
			Str("msg_type", string(env.Type)).
			Msg("Ignoring unsupported message type.")
	}
}

// Apply replaces the document with s and fans it out to every registered peer.
func (b *Board) Apply(s State) {
	s = s.normalize().clone()

	msg, err := encodeState(s)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to encode board state.")
		return
	}

	var dead []Peer

	b.mu.Lock()
	b.state = s
	for _, p := range b.peers {
		if err := p.Send(msg); err != nil {
			dead = append(dead, p)
		}
	}
	for _, p := range dead {
		delete(b.peers, p.ID())
	}
	if len(dead) > 0 {
		b.setConnectionsLocked()
	}
	delivered := len(b.peers)
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.BoardUpdates.Inc()
		b.metrics.BoardPruned.Add(float64(len(dead)))
	}

	for _, p := range dead {
		b.logger.Warn().Str("conn_id", p.ID()).Msg("Pruned connection after failed delivery.")
		p.Close()
	}

	b.logger.Debug().
		Int("delivered", delivered).
		Int("pruned", len(dead)).
		Msg("Board state broadcast.")
}

// Snapshot returns a copy of the current document.
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.clone()
}

// Count returns the number of registered peers.
func (b *Board) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.peers)
}

// Close rejects further joins and closes every registered peer.
func (b *Board) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	peers := make([]Peer, 0, len(b.peers))
	for _, p := range b.peers {
		peers = append(peers, p)
	}
	b.peers = make(map[string]Peer)
	b.setConnectionsLocked()
	b.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}

	b.logger.Info().Int("closed_connections", len(peers)).Msg("Board stopped.")
}

func (b *Board) setConnectionsLocked() {
	if b.metrics != nil {
		b.metrics.BoardConnections.Set(float64(len(b.peers)))
	}
}
