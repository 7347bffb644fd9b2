package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeTopic 主题交换机，routing key支持通配符（order.* / order.#）
const ExchangeTopic = "topic"

// ErrClosed 连接已关闭
var ErrClosed = errors.New("mq: connection closed")

// Publisher 消息发布者
// amqp.Channel不是并发安全的，发布时加锁
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	appID    string
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType, appID string) (*Publisher, error) {
	conn, channel, err := dialAndDeclare(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	zap.L().Info("消息发布者已创建", zap.String("exchange", exchange), zap.String("type", exchangeType))
	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		appID:    appID,
	}, nil
}

// Exchange 返回Exchange名称
func (p *Publisher) Exchange() string {
	return p.exchange
}

// Publish 发布一条JSON消息（持久化投递）
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	msg, err := NewPublishing(message, p.appID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		return ErrClosed
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	zap.L().Debug("消息已发布", zap.String("routing_key", routingKey), zap.ByteString("body", msg.Body))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return closeAll(p.channel, p.conn)
}

// NewPublishing 把消息序列化为amqp.Publishing
func NewPublishing(message interface{}, appID string) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("消息序列化失败: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		AppId:        appID,
	}, nil
}

// =========================================
// 消费者
// =========================================

// Delivery 交给业务处理函数的消息
type Delivery struct {
	RoutingKey string
	Body       []byte
	Timestamp  time.Time
}

// HandlerFunc 消息处理函数，返回error时消息重新入队
type HandlerFunc func(ctx context.Context, d Delivery) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewConsumer 声明Exchange、持久化Queue，并按routingKeys绑定
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string) (*Consumer, error) {
	conn, channel, err := dialAndDeclare(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败(%s): %w", key, err)
		}
	}

	zap.L().Info("消息消费者已创建", zap.String("queue", q.Name), zap.Strings("routing_keys", routingKeys))
	return &Consumer{conn: conn, channel: channel, queue: q.Name}, nil
}

// Queue 返回Queue名称
func (c *Consumer) Queue() string {
	return c.queue
}

// Consume 阻塞消费直到ctx取消
// 手动ACK：处理成功Ack，失败Nack并重新入队；Prefetch=1保证公平分发
func (c *Consumer) Consume(ctx context.Context, handler HandlerFunc) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	log := zap.L().With(zap.String("queue", c.queue))
	log.Info("开始消费消息")

	for {
		select {
		case <-ctx.Done():
			log.Info("消费者退出")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrClosed
			}

			d := Delivery{RoutingKey: msg.RoutingKey, Body: msg.Body, Timestamp: msg.Timestamp}
			if err := handler(ctx, d); err != nil {
				log.Warn("消息处理失败，重新入队", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func dialAndDeclare(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if channel != nil && !channel.IsClosed() {
		errs = append(errs, channel.Close())
	}
	if conn != nil && !conn.IsClosed() {
		errs = append(errs, conn.Close())
	}
	return errors.Join(errs...)
}
