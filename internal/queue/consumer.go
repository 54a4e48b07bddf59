package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Delivery attempt policy for one job: bounded retries with a fixed
// delay, then log and drop.  A dropped notification never affects the
// reservation it refers to; that row committed before the job was
// ever published.
const (
	maxDeliveryAttempts = 3
	deliveryRetryDelay  = 5 * time.Second
)

// Mailer sends one notification email.  The production implementation
// wraps an SMTP dialer; tests substitute a recorder.
type Mailer interface {
	Send(job NotificationJob) error
}

// StartNotificationConsumer connects to RabbitMQ, declares the durable
// notification queue and consumes jobs, delivering each through the
// mailer with the retry policy above.  It runs a reconnect loop with
// exponential backoff and keeps running across broker failures.
func StartNotificationConsumer(brokerURL, queueName string, mailer Mailer) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL)
		if err != nil {
			log.Printf("notification-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, queueName, mailer); err != nil {
			log.Printf("notification-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, queueName string, mailer Mailer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("notification-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		handleDelivery(d.Body, mailer)
		// Ack regardless of the outcome: retries are exhausted inside
		// handleDelivery, and requeueing a poison job would loop forever.
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// handleDelivery attempts delivery of a single job.  After the last
// failed attempt the job is logged and dropped.
func handleDelivery(body []byte, mailer Mailer) {
	var job NotificationJob
	if err := json.Unmarshal(body, &job); err != nil {
		log.Printf("notification-consumer: unmarshal job failed: %v", err)
		return
	}
	var err error
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		if err = mailer.Send(job); err == nil {
			return
		}
		log.Printf("notification-consumer: send attempt %d/%d for reservation %s failed: %v",
			attempt, maxDeliveryAttempts, job.ReservationCode, err)
		if attempt < maxDeliveryAttempts {
			time.Sleep(deliveryRetryDelay)
		}
	}
	log.Printf("notification-consumer: dropping notification for reservation %s after %d attempts: %v",
		job.ReservationCode, maxDeliveryAttempts, err)
}
