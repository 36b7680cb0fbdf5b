package producer

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

// Producer interface defines the methods that a Kafka producer must implement
type Producer interface {
	// Produce 同步發送, block到所有訊息寫入
	Produce(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers       []string
	Topic         string
	RequiredAcks  int
	RetryAttempts int
	BatchTimeout  time.Duration
}

func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:       brokers,
		Topic:         topic,
		RequiredAcks:  -1, // 等待所有副本確認
		RetryAttempts: 3,
		BatchTimeout:  10 * time.Millisecond,
	}
}

type kafkaProducer struct {
	writer *kafka.Writer
	cfg    *Config
	closed atomic.Bool
}

// New 沒有設定broker時回傳 NoopProducer
func New(cfg *Config) Producer {
	if len(cfg.Brokers) == 0 {
		return &NoopProducer{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		MaxAttempts:            cfg.RetryAttempts,
		AllowAutoTopicCreation: true,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),
	}

	return &kafkaProducer{
		writer: writer,
		cfg:    cfg,
	}
}

func (p *kafkaProducer) Produce(ctx context.Context, msgs ...kafka.Message) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if len(msgs) == 0 {
		return nil
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *kafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

// NoopProducer 未啟用kafka時丟棄所有訊息
type NoopProducer struct{}

func (p *NoopProducer) Produce(ctx context.Context, msgs ...kafka.Message) error {
	return nil
}

func (p *NoopProducer) Close() error {
	return nil
}

var (
	_ Producer = (*kafkaProducer)(nil)
	_ Producer = (*NoopProducer)(nil)
)
