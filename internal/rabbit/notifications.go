// notifications.go
package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"apebrain-backend/internal/notify"

	"github.com/rabbitmq/amqp091-go"
)

// NotificationQueue is the durable queue carrying outbound email jobs.
// Decoupling sends from request handling keeps SMTP latency and outages out
// of checkout.
const NotificationQueue = "apebrain_notifications"

// Publisher pushes notification jobs onto the queue. It satisfies
// notify.Dispatcher.
type Publisher struct {
	ch  *amqp091.Channel
	log *slog.Logger
}

func NewPublisher(ch *amqp091.Channel, log *slog.Logger) (*Publisher, error) {
	if _, err := declareQueue(ch); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, log: log}, nil
}

func (p *Publisher) Enqueue(job notify.Job) {
	body, err := json.Marshal(job)
	if err != nil {
		p.log.Error("notification job marshal failed", "kind", job.Kind, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"",                // default exchange
		NotificationQueue, // routing key = queue name
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("notification publish failed", "kind", job.Kind, "error", err)
	}
}

// StartConsumer drains the queue and delivers each job through the processor.
// Retry/backoff lives in the processor; a job that still fails after the last
// attempt is logged and dropped.
func StartConsumer(ch *amqp091.Channel, proc *notify.Processor, log *slog.Logger) error {
	q, err := declareQueue(ch)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		true, // auto-ack: delivery retries are the processor's job
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for m := range msgs {
			var job notify.Job
			if err := json.Unmarshal(m.Body, &job); err != nil {
				log.Error("notification job unmarshal failed", "error", err)
				continue
			}
			proc.ProcessWithRetry(job)
		}
	}()

	log.Info("notification consumer started", "queue", q.Name)
	return nil
}

func declareQueue(ch *amqp091.Channel) (amqp091.Queue, error) {
	return ch.QueueDeclare(
		NotificationQueue,
		true,  // durable
		false,
		false,
		false,
		nil,
	)
}
