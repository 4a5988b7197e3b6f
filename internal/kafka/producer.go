package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// TicketEvent is published for every order and check-in state change. The
// worker consumes it from the notifications topic to inform the passenger.
type TicketEvent struct {
	Type           string `json:"type"`
	OrderReference string `json:"order_reference"`
	UserID         int64  `json:"user_id"`
	FlightID       int64  `json:"flight_id"`
	TicketID       int64  `json:"ticket_id,omitempty"`
	SeatRow        *int   `json:"seat_row,omitempty"`
	SeatNumber     *int   `json:"seat_number,omitempty"`
	Status         string `json:"status"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
