package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"voyage/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxIdleTime = 5 * time.Minute
)

// Connection splits reads from writes so listings can go to a replica.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	role     string
	host     string
	port     string
	user     string
	password string
	name     string
	sslMode  string
	timezone string
}

func (e endpoint) dsn() string {
	query := url.Values{}
	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	if e.timezone != "" {
		query.Set("timezone", e.timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.user, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// New connects both pools and exits the process when either stays unreachable
// after the configured retries.
func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	read := endpoint{
		role: "read", host: pg.Read.Host, port: pg.Read.Port, user: pg.Read.Username, password: pg.Read.Password,
		name: pg.Prefix + pg.Read.Name, sslMode: pg.Read.SSLMode, timezone: pg.Read.Timezone,
	}
	write := endpoint{
		role: "write", host: pg.Write.Host, port: pg.Write.Port, user: pg.Write.Username, password: pg.Write.Password,
		name: pg.Prefix + pg.Write.Name, sslMode: pg.Write.SSLMode, timezone: pg.Write.Timezone,
	}

	wait := time.Duration(pg.RetryWaitTime) * time.Second

	return &Connection{
		Read:  connect(read, pg.MaxRetry, wait),
		Write: connect(write, pg.MaxRetry, wait),
	}
}

// DSN renders the write endpoint for tools that open their own connection,
// such as the migrator.
func DSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	return endpoint{
		host: pg.Write.Host, port: pg.Write.Port, user: pg.Write.Username, password: pg.Write.Password,
		name: pg.Prefix + pg.Write.Name, sslMode: pg.Write.SSLMode,
	}.dsn()
}

func connect(e endpoint, attempts int, wait time.Duration) *sqlx.DB {
	logger := log.With().Str("role", e.role).Str("host", e.host).Str("port", e.port).Str("db", e.name).Logger()

	for attempt := 1; attempt <= max(attempts, 1); attempt++ {
		db, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			db.SetMaxOpenConns(maxOpenConns)
			db.SetMaxIdleConns(maxIdleConns)
			db.SetConnMaxIdleTime(connMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database")
		time.Sleep(wait)
	}

	logger.Fatal().Msg("Database unreachable, giving up")

	return nil
}
