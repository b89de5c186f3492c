package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueNotifier publishes reminder events to RabbitMQ so any client
// surface (native notification bridge, toast service, bot) can
// consume and display them.
type QueueNotifier struct {
	Ch         *amqp.Channel
	Exchange   string
	RoutingKey string
}

func NewQueueNotifier(ch *amqp.Channel, exchange, routingKey string) *QueueNotifier {
	return &QueueNotifier{Ch: ch, Exchange: exchange, RoutingKey: routingKey}
}

func (n *QueueNotifier) Notify(ctx context.Context, r Reminder) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	err = n.Ch.PublishWithContext(ctx,
		n.Exchange,
		n.RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish reminder: %w", err)
	}
	return nil
}
