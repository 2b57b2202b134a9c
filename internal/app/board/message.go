package board

import (
	"encoding/json"
)

// MessageType is the closed set of envelope kinds understood by the board.
type MessageType string

const (
	// TypeState carries a whole board document, inbound as a replacement and
	// outbound as a snapshot or broadcast.
	TypeState MessageType = "state"
)

// Envelope is the wire frame of every board message.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// State is the shared board document. Avatar descriptors are opaque to the server.
type State struct {
	SelectedMapID string            `json:"selectedMapId"`
	PlacedAvatars []json.RawMessage `json:"placedAvatars"`
}

// normalize fills the defaults of a replaced document.
func (s State) normalize() State {
	if s.PlacedAvatars == nil {
		s.PlacedAvatars = []json.RawMessage{}
	}
	return s
}

// clone copies the avatar list so callers cannot alias board-owned memory.
func (s State) clone() State {
	avatars := make([]json.RawMessage, len(s.PlacedAvatars))
	copy(avatars, s.PlacedAvatars)
	s.PlacedAvatars = avatars
	return s
}

// statePayload is the inbound shape. Null or missing fields fall back to defaults.
type statePayload struct {
	SelectedMapID *string           `json:"selectedMapId"`
	PlacedAvatars []json.RawMessage `json:"placedAvatars"`
}

// decodeState parses an inbound state payload. A missing or null payload is the empty document.
func decodeState(raw json.RawMessage) (State, error) {
	var p statePayload
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p); err != nil {
			return State{}, err
		}
	}

	s := State{PlacedAvatars: p.PlacedAvatars}
	if p.SelectedMapID != nil {
		s.SelectedMapID = *p.SelectedMapID
	}
	return s.normalize(), nil
}

// encodeState builds the outbound {type:"state", payload} frame.
func encodeState(s State) ([]byte, error) {
	payload, err := json.Marshal(s.normalize())
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: TypeState, Payload: payload})
}
