package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"user-accounts-api/internal/infrastructure/mq"
)

type (
	EventPublisher interface {
		GetInputChan() chan mq.Event
	}

	RabbitMQ interface {
		EventPublisher
		Connect(ctx context.Context, dsn string) error
		Init() error
		PublisherWorker(ctx context.Context)
		GetConn() *amqp091.Connection
	}
)
