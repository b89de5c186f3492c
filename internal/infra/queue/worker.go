package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mkovalcik/mcrm-backend/internal/infra/notify"
)

// Worker consumes reminder events off the queue and hands them to the
// configured delivery sinks (mail, log). Malformed messages are
// rejected without requeue so they land in the DLQ instead of
// blocking the queue.
type Worker struct {
	Channel  *amqp.Channel
	Delivery notify.Notifier
}

func NewWorker(ch *amqp.Channel, delivery notify.Notifier) *Worker {
	return &Worker{Channel: ch, Delivery: delivery}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var reminder notify.Reminder
			if err := json.Unmarshal(d.Body, &reminder); err != nil {
				log.Printf("❌ [WORKER] invalid reminder payload: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.Delivery.Notify(context.Background(), reminder); err != nil {
				log.Printf("❌ [WORKER] reminder delivery failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] reminder worker waiting on queue '%s'", queueName)
	<-forever
}
