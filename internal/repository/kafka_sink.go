package repository

import (
	"context"
	"fmt"

	"RiskFill/internal/domain/models"
	"RiskFill/pkg/kafka"
	"RiskFill/pkg/logger"
)

// RiskEvent is the Kafka payload for one scored day.
type RiskEvent struct {
	RunID      string   `json:"run_id"`
	Date       string   `json:"date"`
	Risk       float64  `json:"risk"`
	YieldCurve *float64 `json:"yield_curve"`
}

type batchPublisher interface {
	PublishBatch(ctx context.Context, topic string, messages []kafka.Message) error
	Close() error
}

// KafkaRiskSink publishes one message per day, keyed by date.
type KafkaRiskSink struct {
	producer batchPublisher
	topic    string
	l        *logger.Logger
}

func NewKafkaRiskSink(producer batchPublisher, topic string, l *logger.Logger) *KafkaRiskSink {
	if l == nil {
		l = logger.Nop()
	}
	return &KafkaRiskSink{producer: producer, topic: topic, l: l}
}

func (s *KafkaRiskSink) Name() string { return "kafka" }

func (s *KafkaRiskSink) Write(ctx context.Context, runID string, records []models.DailyRisk) error {
	msgs := make([]kafka.Message, 0, len(records))
	for _, r := range records {
		date := r.DateString()
		msgs = append(msgs, kafka.Message{
			Key:   []byte(date),
			Value: RiskEvent{RunID: runID, Date: date, Risk: r.Risk, YieldCurve: r.YieldCurve},
		})
	}
	if err := s.producer.PublishBatch(ctx, s.topic, msgs); err != nil {
		return fmt.Errorf("publish risk history: %w", err)
	}
	s.l.Info("risk events published",
		logger.String("topic", s.topic),
		logger.String("run_id", runID),
		logger.Int("messages", len(msgs)),
	)
	return nil
}

func (s *KafkaRiskSink) Close() error { return s.producer.Close() }
