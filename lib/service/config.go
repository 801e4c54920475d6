package service

type Config struct {
	SentryDSN              string  `envconfig:"SENTRY_DSN"`
	DatadogAgentUrl        string  `envconfig:"DATADOG_AGENT_URL"`
	SentryTracesSampleRate float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath            string  `envconfig:"LOG_FILE_PATH"`
	AccessToken            string  `envconfig:"ACCESS_TOKEN"`
	Host                   string  `envconfig:"HOST" default:"localhost:3000"`
	Port                   int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit       int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	CacheTTL               int     `envconfig:"CACHE_TTL" default:"60"` // in seconds, 0 disables response caching
	EnablePrometheus       bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort         int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	LivenessCheckPeriod    int     `envconfig:"LIVENESS_CHECK_PERIOD" default:"30"` // in seconds
}
