package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события в RabbitMQ.
//
// Ошибки публикации логируются и возвращаются вызывающему, чтобы тот мог
// их проигнорировать, не прерывая основной поток запроса. Сообщения
// помечаются как persistent, очереди объявляются durable
type Publisher struct {
	url    string
	logger Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel

	declared map[string]bool
}

// NewPublisher создает издателя событий и устанавливает соединение с брокером
func NewPublisher(url string, logger Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		logger:   logger,
		declared: make(map[string]bool),
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// PublishAllocationCreated публикует событие выделения слота
func (p *Publisher) PublishAllocationCreated(ctx context.Context, event AllocationCreatedEvent) error {
	return p.publish(ctx, QueueAllocationCreated, event)
}

// PublishAllocationDeleted публикует событие удаления слота
func (p *Publisher) PublishAllocationDeleted(ctx context.Context, event AllocationDeletedEvent) error {
	return p.publish(ctx, QueueAllocationDeleted, event)
}

// PublishRoundReset публикует событие сброса аллокации раунда
func (p *Publisher) PublishRoundReset(ctx context.Context, event RoundResetEvent) error {
	return p.publish(ctx, QueueRoundReset, event)
}

// PublishRoundHandled публикует событие завершения массовой аллокации
func (p *Publisher) PublishRoundHandled(ctx context.Context, event RoundHandledEvent) error {
	return p.publish(ctx, QueueRoundHandled, event)
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	p.conn = conn
	p.ch = ch
	p.declared = make(map[string]bool)
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("events: marshal event for queue=%s failed: %v", queue, err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Переподключаемся после обрыва соединения
	if p.conn == nil || p.conn.IsClosed() {
		if err := p.connect(); err != nil {
			p.logger.Error("events: reconnect failed: %v", err)
			return err
		}
	}

	if !p.declared[queue] {
		if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.logger.Error("events: queue declare failed for queue=%s: %v", queue, err)
			return err
		}
		p.declared[queue] = true
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		p.logger.Error("events: publish to queue=%s failed: %v", queue, err)
		return err
	}

	p.logger.Info("events: published event to queue=%s", queue)
	return nil
}
