package config

import (
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "tokenbook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                           utils.GetEnvString("APP_ENV", "development"),
			Port:                          utils.GetEnvString("APP_PORT", ":8080"),
			Version:                       utils.GetEnvString("APP_VERSION", "v1"),
			Address:                       utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                      utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:                utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                   utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeout:               utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			TokensPerHour:                 utils.GetEnvInt("APP_TOKENS_PER_HOUR", constvars.DefaultTokensPerHour),
			AvailabilityCacheTTLInSeconds: utils.GetEnvInt("APP_AVAILABILITY_CACHE_TTL_IN_SECONDS", 30),
			SlotLockExpirationInSeconds:   utils.GetEnvInt("APP_SLOT_LOCK_EXPIRATION_IN_SECONDS", 5),
			RabbitMQAppointmentQueue:      utils.GetEnvString("APP_RABBITMQ_APPOINTMENT_QUEUE", "appointment_created_queue"),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
	}
}
