package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EmailQueue is the broker queue outbound mail jobs travel through.
const EmailQueue = "quizbank.emails"

// QueueClient wraps the RabbitMQ connection used for outbound mail.
type QueueClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewQueueClient(url string) (*QueueClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &QueueClient{conn: conn, channel: channel}, nil
}

func (c *QueueClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *QueueClient) declareQueue() (amqp.Queue, error) {
	return c.channel.QueueDeclare(
		EmailQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

// Publish puts one job on the email queue.
func (c *QueueClient) Publish(job Job) error {
	if _, err := c.declareQueue(); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return c.channel.PublishWithContext(
		ctx,
		"",         // exchange
		EmailQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
}

// Consume returns the delivery stream of the email queue.
func (c *QueueClient) Consume() (<-chan amqp.Delivery, error) {
	if _, err := c.declareQueue(); err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return c.channel.Consume(
		EmailQueue,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
}

// RunWorker drains the email queue until the channel closes. Failed sends are
// logged and dropped; the queue is best-effort only.
func (s *Service) RunWorker(log *zap.SugaredLogger) {
	if s.queue == nil {
		return
	}
	deliveries, err := s.queue.Consume()
	if err != nil {
		log.Errorw("mail worker couldn't start consuming", "error", err)
		return
	}
	log.Info("mail worker started")
	for d := range deliveries {
		var job Job
		if err := json.Unmarshal(d.Body, &job); err != nil {
			log.Errorw("mail worker received malformed job", "error", err)
			d.Nack(false, false)
			continue
		}
		s.deliver(job)
		d.Ack(false)
	}
	log.Info("mail worker stopped")
}
