package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port    int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env     string `yaml:"env" env:"ENV" env-default:"development"`
		BaseURL string `yaml:"base_url" env:"BASEURL"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" env:"LOGLEVEL" env-default:"info"`
	} `yaml:"log"`
	Database struct {
		Driver       string `yaml:"driver" env:"DBDRIVER" env-default:"memory"`
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	SMTP struct {
		Host     string `yaml:"host" env:"SMTPHOST" env-default:"sandbox.smtp.mailtrap.io"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"2525"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER" env-default:"Bookstore <no-reply@bookstore.com>"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
	} `yaml:"s3"`
	JWT struct {
		Key      string        `yaml:"key" env:"JWTKEY"`
		Issuer   string        `yaml:"issuer" env:"JWTISSUER" env-default:"bookstore-api"`
		Audience string        `yaml:"audience" env:"JWTAUDIENCE" env-default:"bookstore-api"`
		TTL      time.Duration `yaml:"ttl" env:"JWTTTL" env-default:"2h"`
	} `yaml:"jwt"`
	Admin struct {
		Email    string `yaml:"email" env:"ADMINEMAIL" env-default:"admin@bookstore.com"`
		Password string `yaml:"password" env:"ADMINPASSWORD"`
	} `yaml:"admin"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS" env-separator:" "`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// ErrMissingJWTKey is returned when no signing key is configured.
var ErrMissingJWTKey = errors.New("config: jwt key must be provided")

// Decode reads the configuration from the YAML file at path, with environment
// variables taking precedence. When the file does not exist only the
// environment and defaults are used.
func Decode(path string) (Config, error) {
	var cfg Config
	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, &cfg)
	} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return Config{}, statErr
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, err
	}
	if cfg.JWT.Key == "" {
		return Config{}, ErrMissingJWTKey
	}
	return cfg, nil
}
