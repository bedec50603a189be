package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppPort       string `envconfig:"APP_PORT"       default:"8080"`
	DatabaseDSN   string `envconfig:"DB_DSN"         required:"true"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"dev_fallback_secret"`
	UploadDir     string `envconfig:"UPLOAD_DIR"     default:"uploads"`
	BaseURL       string `envconfig:"BASE_URL"       default:""`
	CORSOrigins   string `envconfig:"CORS_ORIGINS"   default:"http://localhost:3000"`
	LogLevel      string `envconfig:"LOG_LEVEL"      default:"info"`
}

// Load reads .env files (current dir and the two parents, for running
// from cmd/server) and then the environment.
func Load(log *logrus.Logger) (*Config, error) {
	if err := godotenv.Overload(".env", "../.env", "../../.env"); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("could not load .env file, continuing")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
