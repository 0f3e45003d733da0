package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/event-reservation/internal/model"
)

const confirmedQueueName = "reservation.confirmed"

// Publisher sends reservation lifecycle messages to RabbitMQ. It
// implements service.ReservationNotifier. Publishing is best-effort:
// every failure is logged and swallowed so a broker outage can never
// fail the reservation workflow that triggered the message.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher that dials the broker at url for
// each message. Connections are short-lived on purpose; the publish
// path is rare (one message per confirmation) and reconnect logic
// stays in the consumer.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// ReservationConfirmed publishes a ReservationConfirmedMessage for the
// given detail. Messages are persistent and the queue is declared
// durable so confirmations survive a broker restart.
func (p *Publisher) ReservationConfirmed(ctx context.Context, detail model.ReservationDetail) {
	msg := ReservationConfirmedMessage{
		ReservationID:   detail.ID,
		UserID:          detail.UserID,
		UserEmail:       detail.User.Email,
		ParticipantName: detail.User.FirstName + " " + detail.User.LastName,
		EventID:         detail.Event.ID,
		EventTitle:      detail.Event.Title,
		EventDate:       detail.Event.Date.UTC().Format(time.RFC3339),
		EventLocation:   detail.Event.Location,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.publish(ctx, msg); err != nil {
		log.Printf("rabbitmq: publish reservation.confirmed failed: %v", err)
	}
}

func (p *Publisher) publish(ctx context.Context, msg ReservationConfirmedMessage) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(confirmedQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                 // default exchange
		confirmedQueueName, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
