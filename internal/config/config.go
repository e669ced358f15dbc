// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	//Scrape settings
	BaseURL   string `yaml:"base_url"`
	MaxPages  int    `yaml:"max_pages"`
	TimeoutMs int    `yaml:"timeout_ms"`
	//Paths
	JSONPath    string `yaml:"json_path"`
	CSVPath     string `yaml:"csv_path"`
	SummaryPath string `yaml:"summary_path"`
	DebugDir    string `yaml:"debug_dir"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 80
	}

	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = 60000
	}

	if cfg.JSONPath == "" {
		cfg.JSONPath = "data/jobs.json"
	}

	if cfg.CSVPath == "" {
		cfg.CSVPath = "data/jobs.csv"
	}

	if cfg.SummaryPath == "" {
		cfg.SummaryPath = "data/summary.json"
	}

	return cfg
}

// RequireTelegram fails the run when the bot credentials are missing.
// Only the notify command needs them, so Load itself does not insist.
func (c *Config) RequireTelegram() {
	if c.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	if c.TelegramChatID == 0 {
		log.Fatal("TELEGRAM_CHAT_ID is required")
	}
}
