package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// Producer handles publishing route analysis events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishRouteAnalyzed publishes an event for a completed route analysis
func (p *Producer) PublishRouteAnalyzed(ctx context.Context, result *models.RouteAnalysis) error {
	event := models.RouteEvent{
		EventType:   models.EventRouteAnalyzed,
		Origin:      result.Origin,
		Destination: result.Destination,
		Action:      result.BookingRecommendation.Action,
		Confidence:  result.BookingRecommendation.Confidence,
		DataSource:  result.DataSource,
		Timestamp:   time.Now(),
	}
	return p.publish(ctx, routeKey(result.Origin, result.Destination), event)
}

// PublishTrendAlertSent publishes an event for a dispatched trend alert
func (p *Producer) PublishTrendAlertSent(ctx context.Context, result *models.RouteAnalysis, recipientCount int) error {
	event := models.RouteEvent{
		EventType:      models.EventTrendAlertSent,
		Origin:         result.Origin,
		Destination:    result.Destination,
		Action:         result.BookingRecommendation.Action,
		Confidence:     result.BookingRecommendation.Confidence,
		RecipientCount: recipientCount,
		Timestamp:      time.Now(),
	}
	return p.publish(ctx, routeKey(result.Origin, result.Destination), event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.RouteEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

func routeKey(origin, destination string) string {
	return origin + ":" + destination
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
