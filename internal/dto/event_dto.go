package dto

import "time"

// DomainEventMessage is the wire form of a domain event on the in-process bus.
type DomainEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
