// Package timezone pins every timestamp the service writes or renders to the
// agency's configured IANA zone. It defaults to UTC until Configure runs.
package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	location.Store(time.UTC)
}

// Configure switches the application zone. An empty name keeps UTC; an
// unknown one is an error and leaves the current zone in place.
func Configure(name string) error {
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	location.Store(loc)
	log.Debug().Str("timezone", loc.String()).Msg("timezone configured")

	return nil
}

func Location() *time.Location {
	return location.Load()
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Parse reads value in the application zone unless the layout carries one.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
