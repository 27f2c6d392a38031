package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// Gateway credentials are read lazily so tests can set the environment
// before the first client is built.
func RazorpayKeyID() string     { return os.Getenv("RZR_ID") }
func RazorpayKeySecret() string { return os.Getenv("RZR_KEY_SECRET") }

// FrontendHost is the base URL the payment callback redirects browsers to.
func FrontendHost() string { return os.Getenv("FRONTEND_HOST") }

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

const EVENT_DATE_FORMAT = "2006-01-02"
