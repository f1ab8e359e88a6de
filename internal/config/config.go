package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	CheckTimes   string `envconfig:"CHECK_TIMES" default:"20:00"`          // comma-separated HH:MM, in CheckTZ
	CheckTZ      string `envconfig:"CHECK_TZ" default:"Asia/Kolkata"`      // timezone for "today" and check times
	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"`         // file|sqlite
	UsersFile    string `envconfig:"USERS_FILE" default:"./data/users.json"`
	DBPath       string `envconfig:"DB_PATH" default:"./data/streak.db"`
	RunMode      string `envconfig:"RUN_MODE" default:"polling"` // polling|webhook
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	Debug        bool   `envconfig:"DEBUG" default:"false"`
	LeetCodeURL  string `envconfig:"LEETCODE_URL" default:"https://leetcode.com/graphql"`
}

// Load reads a .env file (if present) and then environment variables into Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
