package config

import "os"

type Config struct {
	Port            string
	DataDir         string
	JWTSecret       string
	AdminUser       string
	AdminPassword   string
	DeliveryFeeMode string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AdminUser:       getEnv("ADMIN_USER", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin"),
		DeliveryFeeMode: getEnv("DELIVERY_FEE_MODE", "per_item"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
