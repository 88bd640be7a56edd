package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire format for every message this service publishes.
// MessageID is stable per message so consumers can deduplicate.
type Envelope struct {
	MessageID  string    `json:"message_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
}

func NewEnvelope(msgType string, occurredAt time.Time, payload any) Envelope {
	return Envelope{
		MessageID:  uuid.NewString(),
		OccurredAt: occurredAt.UTC(),
		Type:       msgType,
		Payload:    payload,
	}
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
