package model

import (
	"time"
)

const (
	ActivityTableName  = "booking_activities"
	ActivityEntityName = "booking_activity"

	FieldActivityBookingID  = "booking_id"
	FieldActivityOccurredAt = "occurred_at"
)

type Event string

const (
	EventCreated          Event = "booking.created"
	EventUpdated          Event = "booking.updated"
	EventCheckedIn        Event = "booking.checked_in"
	EventCheckedOut       Event = "booking.checked_out"
	EventCancelled        Event = "booking.cancelled"
	EventNoShow           Event = "booking.no_show"
	EventServiceAdded     Event = "booking.service_added"
	EventServiceRemoved   Event = "booking.service_removed"
	EventPaymentCollected Event = "booking.payment_collected"
	EventDeleted          Event = "booking.deleted"
)

// LifecycleEvent is the message published on the booking events topic.
type LifecycleEvent struct {
	ID         string         `json:"id"`
	BookingID  string         `json:"booking_id"`
	Event      Event          `json:"event"`
	Status     Status         `json:"status"`
	Actor      string         `json:"actor"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Activity is a stored lifecycle event. Payload keeps the event as published.
type Activity struct {
	ID         string    `db:"id"`
	BookingID  string    `db:"booking_id"`
	Event      Event     `db:"event"`
	Actor      string    `db:"actor"`
	Payload    string    `db:"payload"`
	OccurredAt time.Time `db:"occurred_at"`
}
