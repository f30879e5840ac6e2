package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dialpro/apiserver/config"
)

// RabbitMQClient carries intent events over a RabbitMQ queue. One queue
// per channel name; the default exchange routes by queue name.
type RabbitMQClient struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	durable    bool
	autoDelete bool
}

// NewRabbitMQClient dials the broker and opens a channel.
func NewRabbitMQClient(cfg config.RabbitMQConfig) (*RabbitMQClient, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, err
		}
	}

	return &RabbitMQClient{
		conn:       conn,
		channel:    ch,
		durable:    cfg.QueueDurable,
		autoDelete: cfg.QueueAutoDelete,
	}, nil
}

// Publish sends one event to the named queue. Payloads are JSON; the
// assigned message id is returned to the caller.
func (r *RabbitMQClient) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if err := r.ensureQueue(channel); err != nil {
		return "", err
	}

	id := uuid.NewString()
	publishing := amqp.Publishing{
		ContentType: "application/json",
		MessageId:   id,
		Headers:     toTable(attrs),
		Body:        data,
	}
	if err := r.channel.PublishWithContext(ctx, "", channel, false, false, publishing); err != nil {
		return "", err
	}
	return id, nil
}

// Subscribe consumes the named queue until ctx is canceled. A handler
// error nacks the delivery back onto the queue.
func (r *RabbitMQClient) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if err := r.ensureQueue(channel); err != nil {
		return err
	}

	tag := "dialpro-" + uuid.NewString()
	deliveries, err := r.channel.Consume(channel, tag, false, false, false, false, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.channel.Cancel(tag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			msg := Message{
				ID:         delivery.MessageId,
				Data:       delivery.Body,
				Attributes: toAttrs(delivery.Headers),
			}
			if err := handler(ctx, msg); err != nil {
				_ = delivery.Nack(false, true)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

// Close releases the channel and connection.
func (r *RabbitMQClient) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *RabbitMQClient) ensureQueue(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("rabbitmq channel is required")
	}
	_, err := r.channel.QueueDeclare(name, r.durable, r.autoDelete, false, false, nil)
	return err
}

func toTable(attrs map[string]string) amqp.Table {
	table := amqp.Table{}
	for key, value := range attrs {
		table[key] = value
	}
	return table
}

func toAttrs(table amqp.Table) map[string]string {
	if len(table) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(table))
	for key, value := range table {
		switch typed := value.(type) {
		case string:
			attrs[key] = typed
		case []byte:
			attrs[key] = string(typed)
		default:
			attrs[key] = fmt.Sprint(value)
		}
	}
	return attrs
}
