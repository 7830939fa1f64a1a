package config

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"hirelens"`
	Password string `env:"PASSWORD" envDefault:"hirelens"`
	Name     string `env:"NAME"     envDefault:"hirelens"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production

	// PoolSize is the steady-state number of pooled connections.
	PoolSize int `env:"POOL_SIZE" envDefault:"10"`
	// MaxOverflow is the number of additional connections allowed beyond PoolSize.
	MaxOverflow int `env:"MAX_OVERFLOW" envDefault:"10"`

	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// MaxOpenConns returns the hard ceiling for open connections.
func (c DBConfig) MaxOpenConns() int {
	return c.PoolSize + c.MaxOverflow
}

// Sanitize applies guardrails to database configuration values.
func (c *DBConfig) Sanitize() {
	if c.PoolSize < 1 {
		c.PoolSize = 1
	}
	if c.MaxOverflow < 0 {
		c.MaxOverflow = 0
	}
}

// RedisConfig contains Redis configuration. Redis backs the probe cache;
// when disabled the probe engine falls back to an in-process cache.
type RedisConfig struct {
	Enabled            bool     `env:"ENABLED"              envDefault:"false"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
