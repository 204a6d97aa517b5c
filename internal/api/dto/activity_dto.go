package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/events"
)

// ActivityEventResponse is one entry of the recent-activity feed.
type ActivityEventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	TicketID  string    `json:"ticketId"`
	ActorID   string    `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// NewActivityFeedResponse maps feed events, newest first.
func NewActivityFeedResponse(feed []events.Event) []ActivityEventResponse {
	out := make([]ActivityEventResponse, 0, len(feed))
	for _, event := range feed {
		out = append(out, ActivityEventResponse{
			ID:        event.ID,
			Type:      string(event.Type),
			TicketID:  event.TicketID,
			ActorID:   event.ActorID,
			ActorRole: string(event.ActorRole),
			Timestamp: event.Timestamp,
			Payload:   event.Payload,
		})
	}
	return out
}
