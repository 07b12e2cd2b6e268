package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv            = "STOREFRONT_APP_ENV"
	EnvPort              = "STOREFRONT_APP_PORT"
	EnvDBDSN             = "STOREFRONT_DB_DSN"
	EnvDBHost            = "STOREFRONT_DB_HOST"
	EnvDBUser            = "STOREFRONT_DB_USER"
	EnvDBName            = "STOREFRONT_DB_NAME"
	EnvDBPassword        = "STOREFRONT_DB_PASSWORD"
	EnvRedisURL          = "STOREFRONT_REDIS_URL"
	EnvAdminPasswordHash = "STOREFRONT_ADMIN_PASSWORD_HASH"
	EnvJWTSecret         = "STOREFRONT_JWT_SECRET"
	EnvJWTExpMins        = "STOREFRONT_JWT_EXPIRATION_MINUTES"
	EnvCORSOrigins       = "STOREFRONT_CORS_ORIGINS"
	EnvMigrationsDir     = "STOREFRONT_MIGRATIONS_DIR"
)

var dbPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
