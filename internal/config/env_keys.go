package config

// Environment variable keys
const (
	EnvConfigPath = "CONFIG_PATH"

	EnvAppEnv   = "APP_ENV"
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	// EnvStoreDriver selects the voucher store: memory, postgres, mysql or redis
	EnvStoreDriver = "STORE_DRIVER"

	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBName     = "DB_NAME"
	EnvDBSSLMode  = "DB_SSLMODE"

	EnvMySQLDSN = "MYSQL_DSN"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
)
