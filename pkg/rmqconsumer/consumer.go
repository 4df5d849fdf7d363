package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-accounts-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// actions maps the routing key of an account event to what happened.
var actions = map[string]string{
	http.MethodPost:   "UserRegistered",
	http.MethodPut:    "UserUpdated",
	http.MethodDelete: "UserDeactivated",
}

type (
	Consumer struct {
		cfg        config.MQ
		log        *zap.Logger
		conn       *amqp091.Connection
		chConsume  *amqp091.Channel
		chDelivery <-chan amqp091.Delivery
	}
	accountEvent struct {
		ID     string    `json:"event_id"`
		TS     time.Time `json:"time_stamp"`
		Method string    `json:"event_action"`
		UserID uint64    `json:"user_id"`
	}
)

func New(cfg config.MQ, logger *zap.Logger) *Consumer {
	return &Consumer{
		cfg: cfg,
		log: logger,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for rk := range actions {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			c.handle(msg)
		case <-ctx.Done():
			c.Close()
			return
		}
	}
}

func (c *Consumer) Close() {
	if c.chConsume != nil {
		_ = c.chConsume.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// handle acks a processed event and drops one it cannot process, so a
// poison message is not redelivered forever.
func (c *Consumer) handle(msg amqp091.Delivery) {
	if err := c.delivery(msg); err != nil {
		c.log.Error("mq read message error", zap.Error(err), zap.String("routing_key", msg.RoutingKey))
		if err = msg.Nack(false, false); err != nil {
			c.log.Error("mq nack error", zap.Error(err))
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		c.log.Error("mq ack error", zap.Error(err))
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	action, ok := actions[msg.RoutingKey]
	if !ok {
		return fmt.Errorf("unknown routing key %q", msg.RoutingKey)
	}

	var e accountEvent
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode account event: %w", err)
	}

	c.log.Info("account event",
		zap.String("action", action),
		zap.String("event_id", e.ID),
		zap.Uint64("user_id", e.UserID),
		zap.Time("time_stamp", e.TS),
	)

	return nil
}
