package handler

import (
	"net/http"
	"sync"

	"voyage/config"
	"voyage/di"
	"voyage/shared/logger"
	"voyage/shared/timezone"
	transport "voyage/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	service *transport.HTTP
	once    sync.Once
)

// Handler is the serverless entrypoint; warm instances reuse the wired service.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		if err := timezone.Configure(cfg.App.Timezone); err != nil {
			log.Fatal().Err(err).Msg("Failed to configure timezone")
		}

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
