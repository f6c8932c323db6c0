package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	App struct {
		// FrontendBaseURL is the apex domain the tenant dashboards live
		// under, e.g. "hirepro.com". Invite links are built as
		// {subdomain}.{FrontendBaseURL}/...
		FrontendBaseURL string `yaml:"frontend_base_url"`
		// ResetTokenTTLMinutes bounds password reset token validity.
		ResetTokenTTLMinutes int `yaml:"reset_token_ttl_minutes"`
	} `yaml:"app"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case
// configuration comes from environment variables (test/CI mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@hirepro.com"
	cfg.Email.FromName = "HirePro"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.App.FrontendBaseURL == "" {
		cfg.App.FrontendBaseURL = "hirepro.com"
	}
	if cfg.App.ResetTokenTTLMinutes == 0 {
		cfg.App.ResetTokenTTLMinutes = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// First-boot operator credentials come from the environment so they
// never end up in a committed config file.
func FirstAdminEmail() string {
	return os.Getenv("FIRST_ADMIN_EMAIL")
}

func FirstAdminPassword() string {
	return os.Getenv("FIRST_ADMIN_PASSWORD")
}
