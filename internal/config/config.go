package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string `yaml:"env" env:"INVTRACK_ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	Storage `yaml:"storage"`
	Session `yaml:"session"`
	Report  `yaml:"report"`
}

type Storage struct {
	Path string `yaml:"path" env:"INVTRACK_DB" env-default:"inventory.db"`
}

type Session struct {
	Secret string        `yaml:"secret" env:"INVTRACK_SESSION_SECRET" env-default:"change-me"`
	TTL    time.Duration `yaml:"ttl" env:"INVTRACK_SESSION_TTL" env-default:"24h"`
	File   string        `yaml:"file" env:"INVTRACK_SESSION_FILE" env-default:".invtrack-session"`
}

type Report struct {
	Path string `yaml:"path" env:"INVTRACK_REPORT" env-default:"sales_report.csv"`
}

// MustLoad reads the config file named by path (or CONFIG_PATH when path is
// empty). Without a file, the tool still runs on env vars and defaults.
func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			panic("config file does not exist: " + path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			panic("Failed to read config" + err.Error())
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("Failed to read config" + err.Error())
	}

	return &cfg
}
