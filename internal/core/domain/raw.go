package domain

import "time"

// RawMessage is an inbound SMS as delivered by the gateway.
// It is transient: only the echo kept on the DataRecord is persisted.
type RawMessage struct {
	// From is the sender phone number.
	From string `json:"from"`

	// Message is the SMS body text.
	Message string `json:"message"`

	// SentTimestamp is the send time as reported by the phone.
	SentTimestamp string `json:"sent_timestamp,omitempty"`

	// SentTo is the destination number.
	SentTo string `json:"sent_to,omitempty"`

	// ReceivedAt is when the gateway delivered the message.
	ReceivedAt time.Time `json:"-"`
}
