package repository

import (
	"context"
	"fmt"
	"math"

	"CandlePull/internal/domain/models"
	pkgkafka "CandlePull/pkg/kafka"
)

// KafkaFeaturePublisher exports each feature row as one JSON message,
// keyed by symbol so a partition sees rows in order.
type KafkaFeaturePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaFeaturePublisher(producer *pkgkafka.Producer, topic string) *KafkaFeaturePublisher {
	return &KafkaFeaturePublisher{producer: producer, topic: topic}
}

func (p *KafkaFeaturePublisher) Name() string { return "kafka" }

func (p *KafkaFeaturePublisher) WriteTable(ctx context.Context, table *models.FeatureTable) error {
	if len(table.Rows) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(table.Rows))
	for i, row := range table.Rows {
		msgs[i] = pkgkafka.Message{
			Key: []byte(table.Symbol),
			Value: map[string]interface{}{
				"symbol":    table.Symbol,
				"unix":      row.Unix,
				"rsi":       jsonNumber(row.RSI),
				"lowerband": jsonNumber(row.LowerBand),
				"upperband": jsonNumber(row.UpperBand),
				"close":     row.Close,
			},
		}
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish features: %w", err)
	}
	return nil
}

func (p *KafkaFeaturePublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// jsonNumber maps NaN to null, since JSON has no NaN literal.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
