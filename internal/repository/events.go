package repository

import (
	"context"
	"fmt"

	"StockPulse/internal/domain/models"
)

const EventPredictionCompleted = "prediction.completed"

// Publisher is the subset of the kafka producer the event publisher needs.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// PredictionEvent is the payload written for every completed prediction.
type PredictionEvent struct {
	Type string                   `json:"type"`
	Data *models.PredictionResult `json:"data"`
}

// KafkaEventPublisher keys events by ticker so one symbol stays on one partition.
type KafkaEventPublisher struct {
	producer Publisher
}

func NewKafkaEventPublisher(p Publisher) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: p}
}

func (p *KafkaEventPublisher) PublishPrediction(ctx context.Context, result *models.PredictionResult) error {
	if result == nil {
		return nil
	}
	evt := PredictionEvent{Type: EventPredictionCompleted, Data: result}
	if err := p.producer.Publish(ctx, result.Symbol, evt); err != nil {
		return fmt.Errorf("publish prediction %s: %w", result.Symbol, err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error { return p.producer.Close() }

// NoopEventPublisher is used when no broker is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishPrediction(context.Context, *models.PredictionResult) error {
	return nil
}

func (NoopEventPublisher) Close() error { return nil }
