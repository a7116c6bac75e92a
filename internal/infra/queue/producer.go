package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event names published on the prospects exchange.
const (
	EventProspectEnriched  = "prospect.enriched"
	EventProspectsImported = "prospects.imported"
)

// ProspectEventPayload announces a lifecycle change to downstream consumers
// (a future sender, sync jobs). ProspectID and Provider are set for
// per-record events; Count for batch events.
type ProspectEventPayload struct {
	Event      string `json:"event"`
	ProspectID string `json:"prospect_id,omitempty"`
	Email      string `json:"email,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Count      int    `json:"count,omitempty"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishProspectEvent(ctx context.Context, payload ProspectEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("queue: marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("queue: publish: %w", err)
	}
	return nil
}
