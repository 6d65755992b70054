// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity event names published by the handlers.
const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ActivityEvent is published on the harvest.activity queue whenever an
// account is registered or a product listing changes. It carries enough
// information for downstream consumers to log or trigger notifications
// without querying the primary database.
type ActivityEvent struct {
	Event      string  `json:"event"`
	UserID     uint64  `json:"user_id"`
	ProductID  uint64  `json:"product_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Category   string  `json:"category,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
