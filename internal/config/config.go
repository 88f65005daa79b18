package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SQLitePath      string
	GroupID         string
	BotPhone        string
	ReplyDelayMinMs int // Minimum delay before reply (milliseconds)
	ReplyDelayMaxMs int // Maximum delay before reply (milliseconds), 0 = use min as fixed
	ShowTyping      bool // Show typing indicator during delay
	HTTPAddr        string // Address of the read-only HTTP API, empty = disabled
	LogLevel        string
	Location        *time.Location // Decides which calendar day a report belongs to
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	return Config{
		SQLitePath:      getenv("SQLITE_PATH", "./data/whatsapp.db"),
		GroupID:         getenv("GROUP_ID", ""),
		BotPhone:        getenv("BOT_PHONE", ""),
		ReplyDelayMinMs: getenvInt("REPLY_DELAY_MIN_MS", 0),
		ReplyDelayMaxMs: getenvInt("REPLY_DELAY_MAX_MS", 0),
		ShowTyping:      getenvBool("SHOW_TYPING", false),
		HTTPAddr:        getenv("HTTP_ADDR", ""),
		LogLevel:        getenv("LOG_LEVEL", "INFO"),
		Location:        getenvLocation("TIMEZONE", time.Local),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getenvLocation(key string, fallback *time.Location) *time.Location {
	if v := os.Getenv(key); v != "" {
		loc, err := time.LoadLocation(v)
		if err == nil {
			return loc
		}
		log.Printf("Invalid %s %q, using %s: %v", key, v, fallback, err)
	}
	return fallback
}
