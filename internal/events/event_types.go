package events

import "time"

// EventType enumerates client-side event identifiers.
type EventType string

const (
	EventSignedIn    EventType = "signed_in"
	EventSignedOut   EventType = "signed_out"
	EventLikeToggled EventType = "like_toggled"
	EventCardCreated EventType = "card_created"
	EventCardDeleted EventType = "card_deleted"
)

// Event represents something the client did against the directory.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CardID    string      `json:"card_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LikeToggledPayload payload.
type LikeToggledPayload struct {
	Liked bool `json:"liked"`
}

// CardCreatedPayload payload.
type CardCreatedPayload struct {
	Title string `json:"title"`
}
