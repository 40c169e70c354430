package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTExpiration time.Duration
}

func Load() *Config {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":5000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "devconnect"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		// Tokens are valid for 36000 seconds from issuance; there is no refresh.
		JWTExpiration: 36000 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
