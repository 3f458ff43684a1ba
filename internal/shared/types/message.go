package types

import "encoding/json"

// WSMessage is the envelope for WebSocket traffic between the frontend and
// the kernel service.
type WSMessage struct {
	Type   string          `json:"type"`
	URL    string          `json:"url,omitempty"`
	Action json.RawMessage `json:"action,omitempty"`
}
