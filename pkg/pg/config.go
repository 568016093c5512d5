package pg

import "time"

// Config holds the pool settings read from the environment.
type Config struct {
	ConnectionString  string        `env:"DATABASE_URL,required,notEmpty"`
	MaxConns          int32         `env:"PG_MAX_CONNS" envDefault:"20"`
	MinConns          int32         `env:"PG_MIN_CONNS" envDefault:"0"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"30s"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	ConnectTimeout    time.Duration `env:"PG_CONNECT_TIMEOUT" envDefault:"2s"`
	SearchPath        string        `env:"PG_SEARCH_PATH" envDefault:"zenith_portal"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`

	// SlowQueryThreshold logs statements that take longer; zero disables it.
	SlowQueryThreshold time.Duration `env:"PG_SLOW_QUERY_THRESHOLD" envDefault:"0"`

	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
