package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without one.
const EnvPrefix = "epc"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "EPC_APP_ENV"
	EnvPort      = "EPC_APP_PORT"
	EnvDBDSN     = "EPC_DB_DSN"
	EnvDBHost    = "EPC_DB_HOST"
	EnvDBUser    = "EPC_DB_USER"
	EnvDBName    = "EPC_DB_NAME"
	EnvRedisURL  = "EPC_REDIS_URL"
	EnvJWTSecret = "EPC_JWT_SECRET"
	EnvJWTIssuer = "EPC_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
