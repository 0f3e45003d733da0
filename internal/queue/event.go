// Package queue publishes and consumes reservation lifecycle messages
// over RabbitMQ. Downstream consumers (ticket rendering, notification
// delivery) only ever see CONFIRMED reservations.
package queue

// ReservationConfirmedMessage is published on the reservation.confirmed
// queue when an administrator confirms a reservation. It carries enough
// joined data for consumers to render a ticket or send a notification
// without querying the primary database.
type ReservationConfirmedMessage struct {
	ReservationID   string `json:"reservation_id"`
	UserID          string `json:"user_id"`
	UserEmail       string `json:"user_email"`
	ParticipantName string `json:"participant_name"`
	EventID         string `json:"event_id"`
	EventTitle      string `json:"event_title"`
	EventDate       string `json:"event_date"`
	EventLocation   string `json:"event_location"`
	ConfirmedAt     string `json:"confirmed_at"`
}
