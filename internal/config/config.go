package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port        string
	FrontendURL string

	// Simulation
	TargetFPS            int
	TableWidth           float64
	TableHeight          float64
	PocketRadius         float64
	BallRadius           float64
	FrictionDeceleration float64
	StrikePower          float64
	ChargeTime           float64
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Simulation
		TargetFPS:            getEnvInt("TARGET_FPS", 60),
		TableWidth:           getEnvFloat("TABLE_WIDTH", 15.0),
		TableHeight:          getEnvFloat("TABLE_HEIGHT", 8.0),
		PocketRadius:         getEnvFloat("POCKET_RADIUS", 0.4),
		BallRadius:           getEnvFloat("BALL_RADIUS", 0.3),
		FrictionDeceleration: getEnvFloat("FRICTION_DECELERATION", 0.18),
		StrikePower:          getEnvFloat("STRIKE_POWER", 60.0),
		ChargeTime:           getEnvFloat("CHARGE_TIME", 1.0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
