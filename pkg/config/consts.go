package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// envconfig tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "VITRINA_APP_ENV"
	EnvPort     = "VITRINA_APP_PORT"
	EnvDBDSN    = "VITRINA_DB_DSN"
	EnvDBHost   = "VITRINA_DB_HOST"
	EnvDBUser   = "VITRINA_DB_USER"
	EnvDBName   = "VITRINA_DB_NAME"
	EnvRedisURL = "VITRINA_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
