package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		Build    string

		AppName   string
		SecretKey string

		FromName       string
		FromEmail      string
		SendgridApiKey string
		RollbarToken   string

		Server     ServerConfig
		Database   DatabaseConfig
		Validation ValidationConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		DebugAddr          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		Host       string
		Port       string
		User       string
		Password   string
		DisableTLS bool
	}

	// ValidationConfig holds the data-entry validation engine tunables.
	ValidationConfig struct {
		SimilarityThreshold float64
		MaxSuggestions      int
		BatchLimit          int
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.FromName, Address: c.FromEmail}
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Mahudhurio")
	conf.SetDefault("secretKey", "v3ry-s3cr3t-k3y-ch4ng3-m3-1n-pr0d")
	conf.SetDefault("fromName", "Mahudhurio")
	conf.SetDefault("fromEmail", "noreply@localhost")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverDebugAddr", ":8001")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("databaseEngine", "postgres")
	conf.SetDefault("databaseName", "mahudhurio")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", "5432")
	conf.SetDefault("databaseUser", "")
	conf.SetDefault("databasePassword", "")
	conf.SetDefault("databaseDisableTLS", true)
	conf.SetDefault("similarityThreshold", 0.6)
	conf.SetDefault("maxSuggestions", 3)
	conf.SetDefault("batchLimit", 500)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:      env,
		Debug:    conf.GetBool("debug"),
		TestMode: env == "TEST",
		Build:    conf.GetString("build"),

		AppName:   conf.GetString("appName"),
		SecretKey: conf.GetString("secretKey"),

		FromName:       conf.GetString("fromName"),
		FromEmail:      conf.GetString("fromEmail"),
		SendgridApiKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),

		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Addr:               conf.GetString("serverAddr"),
			DebugAddr:          conf.GetString("serverDebugAddr"),
			ShutdownTimeout:    conf.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("databaseEngine"),
			Name:       conf.GetString("databaseName"),
			Host:       conf.GetString("databaseHost"),
			Port:       conf.GetString("databasePort"),
			User:       conf.GetString("databaseUser"),
			Password:   conf.GetString("databasePassword"),
			DisableTLS: conf.GetBool("databaseDisableTLS"),
		},
		Validation: ValidationConfig{
			SimilarityThreshold: conf.GetFloat64("similarityThreshold"),
			MaxSuggestions:      conf.GetInt("maxSuggestions"),
			BatchLimit:          conf.GetInt("batchLimit"),
		},
	}
}
