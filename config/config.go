package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	NewRelic NewRelicConfig
	Worker   WorkerConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port           int
	Mode           string // debug, release, test
	AllowedOrigins []string
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the token issuance configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// WorkerConfig holds the background worker configuration
type WorkerConfig struct {
	StatsIntervalMinutes int
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/packpal")
		viper.SetConfigName("config")
	}

	// Environment overrides, e.g. PACKPAL_SERVER_PORT for server.port
	viper.SetEnvPrefix("PACKPAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.allowedorigins", []string{"http://localhost:5173"})

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "packpal")
	viper.SetDefault("database.password", "packpal")
	viper.SetDefault("database.dbname", "packpal_db")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Tokens stay valid for 30 days
	viper.SetDefault("auth.tokenttlhours", 720)

	viper.SetDefault("newrelic.appname", "Packpal Local")
	viper.SetDefault("newrelic.enabled", false)

	viper.SetDefault("worker.statsintervalminutes", 10)
}

// Load loads the configuration
func Load() (*Config, error) {
	serverConfig := ServerConfig{
		Port:           viper.GetInt("server.port"),
		Mode:           viper.GetString("server.mode"),
		AllowedOrigins: viper.GetStringSlice("server.allowedorigins"),
	}

	dbConfig := DatabaseConfig{
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.dbname"),
		SSLMode:  viper.GetString("database.sslmode"),
	}

	redisConfig := RedisConfig{
		Host:     viper.GetString("redis.host"),
		Port:     viper.GetInt("redis.port"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}

	authConfig := AuthConfig{
		JWTSecret:     viper.GetString("auth.jwtsecret"),
		TokenTTLHours: viper.GetInt("auth.tokenttlhours"),
	}
	if authConfig.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtsecret is required (set PACKPAL_AUTH_JWTSECRET)")
	}

	newRelicConfig := NewRelicConfig{
		AppName:    viper.GetString("newrelic.appname"),
		LicenseKey: viper.GetString("newrelic.licensekey"),
		Enabled:    viper.GetBool("newrelic.enabled"),
	}

	workerConfig := WorkerConfig{
		StatsIntervalMinutes: viper.GetInt("worker.statsintervalminutes"),
	}

	return &Config{
		Server:   serverConfig,
		Database: dbConfig,
		Redis:    redisConfig,
		Auth:     authConfig,
		NewRelic: newRelicConfig,
		Worker:   workerConfig,
	}, nil
}
