package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Providers   ProvidersConfig `mapstructure:"providers"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
}

// RedisConfig contains settings for the idempotency response cache
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cacheTTL"` // minutes
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AuthConfig contains JWT settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"` // minutes
}

// ProvidersConfig groups the external aggregator and payment settings
type ProvidersConfig struct {
	RequestTimeout time.Duration    `mapstructure:"requestTimeout"` // seconds
	EasyAccess     EasyAccessConfig `mapstructure:"easyaccess"`
	NelloBytes     NelloBytesConfig `mapstructure:"nellobytes"`
	SMSClone       SMSCloneConfig   `mapstructure:"smsclone"`
	Paystack       PaystackConfig   `mapstructure:"paystack"`
}

// EasyAccessConfig contains EasyAccess aggregator settings
type EasyAccessConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
}

// NelloBytesConfig contains NelloBytes aggregator settings
type NelloBytesConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	UserID  string `mapstructure:"userId"`
	APIKey  string `mapstructure:"apiKey"`
}

// SMSCloneConfig contains bulk SMS provider settings
type SMSCloneConfig struct {
	BaseURL  string `mapstructure:"baseUrl"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}

// PaystackConfig contains card funding gateway settings
type PaystackConfig struct {
	BaseURL     string `mapstructure:"baseUrl"`
	SecretKey   string `mapstructure:"secretKey"`
	CallbackURL string `mapstructure:"callbackUrl"`
}
