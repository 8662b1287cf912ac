package activity

import (
	"commerce-admin-svc/src/internal/config"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Publisher mirrors recorded entries to the message broker for downstream
// consumers. Publishing is best-effort: a failure never affects the
// persisted entry.
type Publisher interface {
	Publish(entry *Entry) error
}

type amqpPublisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewPublisher(channel *amqp.Channel, cfg *config.Configuration) Publisher {
	return &amqpPublisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

func (p *amqpPublisher) Publish(entry *Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish activity entry: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"log_id":      entry.ID.Hex(),
		"action":      entry.Action,
		"resource":    entry.Resource,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Activity entry published")

	return nil
}
