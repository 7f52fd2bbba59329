package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration settings for the application.
type Config struct {
	// Server settings
	ListenAddress string
	ListenPort    string

	// Storage settings
	DataDir      string
	UserID       string // Fixed single-user identifier
	DataFilePath string // Resolved: <DataDir>/<UserID>.json
	SaveInterval time.Duration
	EnableBackup bool

	// Advisor settings
	GeminiModel string
}

const (
	defaultAddress      = "0.0.0.0"
	defaultPort         = "8080"
	defaultDataDir      = "./data"
	defaultUserID       = "test_user"
	defaultSaveInterval = 0 * time.Second // <= 0 means synchronous persistence
	defaultEnableBackup = true
	defaultGeminiModel  = "gemini-2.0-flash"
)

// LoadConfig loads configuration from defaults, environment variables, and
// command-line flags. Flags take precedence over environment variables, which
// take precedence over defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	// Use BUDGETBUDDY_ prefix for environment variables to avoid conflicts.
	flag.StringVar(&cfg.ListenAddress, "address", getEnv("BUDGETBUDDY_LISTEN_ADDRESS", defaultAddress), "Server listen address (Env: BUDGETBUDDY_LISTEN_ADDRESS)")
	flag.StringVar(&cfg.ListenPort, "port", defaultPort, "Server listen port (Env: BUDGETBUDDY_LISTEN_PORT)")
	flag.StringVar(&cfg.DataDir, "data-dir", getEnv("BUDGETBUDDY_DATA_DIR", defaultDataDir), "Directory for the JSON data file (Env: BUDGETBUDDY_DATA_DIR)")
	flag.StringVar(&cfg.UserID, "user-id", getEnv("BUDGETBUDDY_USER_ID", defaultUserID), "Fixed single-user identifier (Env: BUDGETBUDDY_USER_ID)")
	saveIntervalStr := flag.String("save-interval", getEnv("BUDGETBUDDY_SAVE_INTERVAL", defaultSaveInterval.String()), "Debounce interval for saving state; 0 saves synchronously (Env: BUDGETBUDDY_SAVE_INTERVAL)")
	flag.BoolVar(&cfg.EnableBackup, "enable-backup", getEnvBool("BUDGETBUDDY_ENABLE_BACKUP", defaultEnableBackup), "Keep a .bak copy of the data file before saving (Env: BUDGETBUDDY_ENABLE_BACKUP)")
	flag.StringVar(&cfg.GeminiModel, "gemini-model", getEnv("BUDGETBUDDY_GEMINI_MODEL", defaultGeminiModel), "Gemini model used for financial analysis (Env: BUDGETBUDDY_GEMINI_MODEL)")

	flag.Parse()

	// Environment variables for flags whose defaults cannot carry the env
	// lookup (the flag may have been left at its default).
	envPort := getEnv("BUDGETBUDDY_LISTEN_PORT", "")
	if cfg.ListenPort == defaultPort && envPort != "" {
		cfg.ListenPort = envPort
	}
	envSaveInterval := getEnv("BUDGETBUDDY_SAVE_INTERVAL", "")
	if *saveIntervalStr == defaultSaveInterval.String() && envSaveInterval != "" {
		if _, err := time.ParseDuration(envSaveInterval); err == nil {
			*saveIntervalStr = envSaveInterval
		} else {
			log.Printf("WARN: Invalid duration in BUDGETBUDDY_SAVE_INTERVAL: '%s'. Using default/flag value. Error: %v", envSaveInterval, err)
		}
	}

	var err error
	cfg.SaveInterval, err = time.ParseDuration(*saveIntervalStr)
	if err != nil {
		log.Printf("WARN: Invalid save-interval duration '%s'. Using default %s. Error: %v", *saveIntervalStr, defaultSaveInterval, err)
		cfg.SaveInterval = defaultSaveInterval
	}

	if strings.TrimSpace(cfg.UserID) == "" {
		return nil, fmt.Errorf("user-id must not be empty")
	}

	// Resolve the data file path from the directory and the fixed user id.
	absDataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("could not determine absolute path for data-dir '%s': %w", cfg.DataDir, err)
	}
	cfg.DataDir = absDataDir
	cfg.DataFilePath = filepath.Join(cfg.DataDir, cfg.UserID+".json")

	// The data file must not be an existing directory.
	fileInfo, err := os.Stat(cfg.DataFilePath)
	if err == nil && fileInfo.IsDir() {
		return nil, fmt.Errorf("data path '%s' points to a directory, not a file", cfg.DataFilePath)
	}
	// A missing file is fine: the store initializes defaults on first load.

	logConfiguration(cfg)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable or returns a default
// value. Recognizes "true", "1", "yes" (case-insensitive) as true.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		log.Printf("WARN: Invalid boolean value for environment variable %s: '%s'. Using default: %t", key, value, fallback)
	}
	return fallback
}

// logConfiguration prints the loaded configuration settings.
func logConfiguration(cfg *Config) {
	log.Println("--- Configuration ---")
	log.Printf("Server Address: %s", cfg.ListenAddress)
	log.Printf("Server Port: %s", cfg.ListenPort)
	log.Printf("Data File: %s", cfg.DataFilePath)
	log.Printf("Save Interval: %s", cfg.SaveInterval)
	log.Printf("Backup Enabled: %t", cfg.EnableBackup)
	log.Printf("Gemini Model: %s", cfg.GeminiModel)
	log.Println("---------------------")
}
