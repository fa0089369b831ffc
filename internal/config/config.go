package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/almadepapel/storefront/internal/models"
)

type Config struct {
	APP_ENV        string
	HTTP_ADDR      string
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	SESSION_SECRET string
	KAFKA_ADDRESS  string
	SMTP_HOST      string
	SMTP_PORT      string
	SMTP_USER      string
	SMTP_PASSWORD  string
	CONTACT_TO     string
	LOG_LEVEL      string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		APP_ENV:        getEnv("APP_ENV", "development"),
		HTTP_ADDR:      getEnv("HTTP_ADDR", ":8080"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        getEnv("DB_PORT", "5432"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		SESSION_SECRET: os.Getenv("SESSION_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		SMTP_HOST:      os.Getenv("SMTP_HOST"),
		SMTP_PORT:      getEnv("SMTP_PORT", "587"),
		SMTP_USER:      os.Getenv("SMTP_USER"),
		SMTP_PASSWORD:  os.Getenv("SMTP_PASSWORD"),
		CONTACT_TO:     os.Getenv("CONTACT_TO"),
		LOG_LEVEL:      getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

func (c *Config) Production() bool { return c.APP_ENV == "production" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Category{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
