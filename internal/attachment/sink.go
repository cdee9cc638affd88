package attachment

import (
	"context"
	"fmt"
	"time"

	"voyage/config"
	"voyage/infras/kafka"
	"voyage/shared/timezone"

	"github.com/rs/zerolog/log"
)

// OrphanEvent is published once per media object that could not be deleted.
type OrphanEvent struct {
	Ref        string    `json:"ref"`
	ReportedAt time.Time `json:"reported_at"`
}

// OrphanSink forwards orphaned references to whatever reconciles them.
type OrphanSink interface {
	Publish(ctx context.Context, refs ...string) error
}

type kafkaSink struct {
	client kafka.Client
	topic  string
}

func NewKafkaSink(client kafka.Client, topic string) OrphanSink {
	return &kafkaSink{client: client, topic: topic}
}

func (s *kafkaSink) Publish(ctx context.Context, refs ...string) error {
	if len(refs) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(refs))
	for _, ref := range refs {
		messages = append(messages, kafka.Message{
			Key:   ref,
			Value: OrphanEvent{Ref: ref, ReportedAt: timezone.Now()},
		})
	}

	if err := s.client.SendMessages(ctx, s.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish orphaned media: %w", err)
	}

	return nil
}

type logSink struct{}

// NewLogSink only records orphans in the log; used when Kafka is disabled.
func NewLogSink() OrphanSink {
	return logSink{}
}

func (logSink) Publish(_ context.Context, refs ...string) error {
	log.Warn().Strs("refs", refs).Msg("orphaned media requires manual cleanup")

	return nil
}

// NewSink picks the Kafka sink when KAFKA_ENABLE is set.
func NewSink(cfg *config.Config, client kafka.Client) OrphanSink {
	if !cfg.Kafka.Enable {
		return NewLogSink()
	}

	return NewKafkaSink(client, cfg.Kafka.Topics.OrphanedMedia)
}
