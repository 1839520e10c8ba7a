package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName          = "cyberguard"
	RoutingKeyScamMessage = "message.scam.detected"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes alerts as JSON events to a topic exchange.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       publisher
	exchange string
	logger   *zap.Logger
}

// DialAMQP connects to the broker and declares the alert exchange.
func DialAMQP(url string, logger *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", ExchangeName, err)
	}

	logger.Info("AMQP alert publisher connected", zap.String("exchange", ExchangeName))

	n := newAMQPNotifier(ch, ExchangeName, logger)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(ch publisher, exchange string, logger *zap.Logger) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange, logger: logger}
}

func (n *AMQPNotifier) Name() string { return "amqp" }

func (n *AMQPNotifier) Send(ctx context.Context, alert Alert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, RoutingKeyScamMessage, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    alert.MessageID,
	})
	if err != nil {
		return fmt.Errorf("failed to publish alert to exchange '%s': %w", n.exchange, err)
	}
	return nil
}

// Close closes the broker connection, which also closes the channel.
func (n *AMQPNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
