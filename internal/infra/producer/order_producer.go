package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

const eventTypeHeader = "event_type"

// OrderEvent 訂單事件內容, key 為 order id 以保證同一訂單的事件順序
type OrderEvent struct {
	Type           OrderEventType    `json:"type"`
	OrderID        uuid.UUID         `json:"order_id"`
	OrderNumber    string            `json:"order_number"`
	UserID         uuid.UUID         `json:"user_id"`
	Status         model.OrderStatus `json:"status"`
	PreviousStatus model.OrderStatus `json:"previous_status,omitempty"`
	Total          decimal.Decimal   `json:"total"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

type OrderProducer struct {
	producer Producer
}

func NewOrderProducer(producer Producer) *OrderProducer {
	if producer == nil {
		panic("NewOrderProducer: producer cannot be nil")
	}
	return &OrderProducer{producer: producer}
}

func (p *OrderProducer) OrderCreated(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, newOrderEvent(OrderEventCreated, order, ""))
}

func (p *OrderProducer) OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) error {
	return p.publish(ctx, newOrderEvent(OrderEventStatusChanged, order, previous))
}

func newOrderEvent(t OrderEventType, order *model.Order, previous model.OrderStatus) OrderEvent {
	return OrderEvent{
		Type:           t,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total,
		OccurredAt:     time.Now().UTC(),
	}
}

func (p *OrderProducer) publish(ctx context.Context, event OrderEvent) error {
	msg, err := convertToMessage(event)
	if err != nil {
		return err
	}
	return p.producer.Produce(ctx, msg)
}

func convertToMessage(event OrderEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   eventTypeHeader,
				Value: []byte(event.Type),
			},
		},
	}, nil
}
