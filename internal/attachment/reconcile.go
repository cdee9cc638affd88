package attachment

import (
	"context"
	"fmt"

	"voyage/infras/kafka"
	"voyage/infras/media"
	"voyage/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// NewReconcileHandler retries the deletion of one orphaned object. A refused
// deletion is returned as an error so the consumer retries it with backoff.
func NewReconcileHandler(store media.Store) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		event, err := kafka.Decode[OrphanEvent](message)
		if err != nil {
			// malformed events can never succeed
			log.Error().Err(err).Int64("offset", message.Offset).Msg("dropping undecodable orphan event")

			return nil
		}

		if event.Ref == constant.Empty {
			return nil
		}

		if !store.Delete(ctx, event.Ref) {
			return fmt.Errorf("media store still refuses to delete %s", event.Ref)
		}

		log.Info().Str("ref", event.Ref).Time("reported_at", event.ReportedAt).Msg("orphaned media removed")

		return nil
	}
}
