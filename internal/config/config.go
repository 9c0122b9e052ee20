package config

import (
	"log"
	"os"
)

type Config struct {
	Port          string
	DBDSN         string
	SessionSecret string
	LogFile       string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "loja.db"
	} // sqlite file in project root
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		// Dev-only default; cookies are encrypted with this key.
		secret = "Zml4ZWQtZGV2LXNlc3Npb24ta2V5LTMyLWJ5dGVzISE="
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DBDSN: dsn, SessionSecret: secret, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile)
	return cfg
}
