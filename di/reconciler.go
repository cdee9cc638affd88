package di

import (
	"context"

	"voyage/config"
	"voyage/infras/kafka"
	"voyage/infras/media"
	"voyage/internal/attachment"

	"github.com/rs/zerolog/log"
)

// Reconciler drains the orphaned-media topic. Deletions the store keeps
// refusing end up on the topic's dead-letter twin.
type Reconciler struct {
	Config *config.Config
	Kafka  kafka.Client
	Store  media.Store
}

func (r *Reconciler) Run(ctx context.Context) {
	if !r.Config.Kafka.Enable {
		log.Warn().Msg("Kafka is disabled, orphaned media is only logged and nothing is reconciled")

		return
	}

	topic := r.Config.Kafka.Topics.OrphanedMedia

	log.Info().Str("topic", topic).Msg("Starting orphaned media reconciler")

	r.Kafka.Consume(ctx, r.Config.Kafka.ConsumerGroup, topic, attachment.NewReconcileHandler(r.Store))
}
