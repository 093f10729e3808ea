package messaging

import (
	"context"
)

// Channel for slot-freed events published on cancellation.
const SlotFreedChannel = "slot_freed"

// SlotFreedEvent says a previously booked slot became available again.
type SlotFreedEvent struct {
	DoctorID int64  `json:"doctor_id"`
	Date     string `json:"date"`
}

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Publisher is the producer half of Broker.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}
