package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Environment variables override config file values
	v.SetEnvPrefix("VTU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cacheTTL", 60) // minutes

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("auth.tokenTTL", 60) // minutes

	v.SetDefault("providers.requestTimeout", 30) // seconds
	v.SetDefault("providers.easyaccess.baseUrl", "https://easyaccessapi.com.ng")
	v.SetDefault("providers.nellobytes.baseUrl", "https://www.nellobytesystems.com")
	v.SetDefault("providers.smsclone.baseUrl", "https://smsclone.com")
	v.SetDefault("providers.paystack.baseUrl", "https://api.paystack.co")
}

// getEnvironment determines the environment to use based on VTU_ENV
func getEnvironment() string {
	env := os.Getenv("VTU_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures sensitive values can come from the environment
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"database.host":                "VTU_DB_HOST",
		"database.username":            "VTU_DB_USERNAME",
		"database.password":            "VTU_DB_PASSWORD",
		"database.database":            "VTU_DB_NAME",
		"database.sslMode":             "VTU_DB_SSL_MODE",
		"redis.addr":                   "VTU_REDIS_ADDR",
		"redis.password":               "VTU_REDIS_PASSWORD",
		"auth.jwtSecret":               "VTU_JWT_SECRET",
		"providers.easyaccess.apiKey":  "VTU_EASYACCESS_API_KEY",
		"providers.nellobytes.userId":  "VTU_NELLOBYTES_USER_ID",
		"providers.nellobytes.apiKey":  "VTU_NELLOBYTES_API_KEY",
		"providers.smsclone.username":  "VTU_SMSCLONE_USERNAME",
		"providers.smsclone.password":  "VTU_SMSCLONE_PASSWORD",
		"providers.paystack.secretKey": "VTU_PAYSTACK_SECRET_KEY",
	}
	for key, envName := range overrides {
		if val := os.Getenv(envName); val != "" {
			v.Set(key, val)
		}
	}
}

// processDurations converts duration fields from their raw config values
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	config.Redis.CacheTTL = time.Duration(config.Redis.CacheTTL) * time.Minute
	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Minute
	config.Providers.RequestTimeout = time.Duration(config.Providers.RequestTimeout) * time.Second
}

// validate rejects configurations that cannot run safely
func validate(config *Config) error {
	if config.Environment == Production && config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required in production")
	}
	return nil
}
