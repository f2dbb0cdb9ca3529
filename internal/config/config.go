package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Postgres   Postgres   `yaml:"postgres"`
	JWT        JWT        `yaml:"jwt"`
	ES         ES         `yaml:"elasticsearch"`
	Minio      Minio      `yaml:"minio"`
}

type HTTPServer struct {
	Port        int           `yaml:"port" env:"HTTP_PORT" env-default:"9000"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USERNAME"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
}

type JWT struct {
	SecretKey string        `yaml:"secret_key" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

type ES struct {
	Hosts    []string `yaml:"hosts" env:"ES_HOSTS"`
	Index    string   `yaml:"index" env:"ES_INDEX" env-default:"courses"`
	Password string   `yaml:"password" env:"ES_PASSWORD"`
}

type Minio struct {
	Endpoint   string        `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"minio:9000"`
	AccessKey  string        `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey  string        `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL     bool          `yaml:"use_ssl" env:"MINIO_USE_SSL"`
	IconBucket string        `yaml:"icon_bucket" env:"MINIO_ICON_BUCKET" env-default:"course-icons"`
	PresignTTL time.Duration `yaml:"presign_ttl" env:"MINIO_PRESIGN_TTL" env-default:"1h"`
}

// MustLoad reads the config file named by CONFIG_PATH, falling back to pure
// environment variables when no file is configured (the Docker case).
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err)
		}
		resolvePort(&cfg)
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err)
	}
	resolvePort(&cfg)
	return &cfg
}

// resolvePort applies the port precedence: CLI argument, then the PORT env
// var, then whatever the config file (or HTTP_PORT default) produced.
func resolvePort(cfg *Config) {
	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil && p > 0 {
			cfg.HTTPServer.Port = p
		}
	}
	if len(os.Args) > 1 {
		if p, err := strconv.Atoi(os.Args[1]); err == nil && p > 0 {
			cfg.HTTPServer.Port = p
		}
	}
}

func (h HTTPServer) Address() string {
	return fmt.Sprintf(":%d", h.Port)
}
