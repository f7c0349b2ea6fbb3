package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	App      AppConfig      `mapstructure:"app"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id"`
	Topics          []string `mapstructure:"topics"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	// TLSMode is one of "auto", "starttls", "ssl", "none".
	TLSMode string `mapstructure:"tls_mode"`
}

type AppConfig struct {
	// URL is the public base URL injected into mail bodies as application_url.
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
	// Language is the default locale used when a recipient has none.
	Language string `mapstructure:"language"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Load reads configuration from environment variables and config files.
// Environment variables override file values. Prefix: TASKMAIL_
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", "8092")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "arda_taskboard")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.consumer_group_id", "arda-taskmail-group")
	v.SetDefault("kafka.topics", []string{"task-events", "comment-events", "subtask-events", "file-events", "task-reminders"})
	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "notifications@localhost")
	v.SetDefault("smtp.from_name", "Taskboard")
	v.SetDefault("smtp.tls_mode", "auto")
	v.SetDefault("app.url", "http://localhost:8080/")
	v.SetDefault("app.name", "Taskboard")
	v.SetDefault("app.language", "en")

	// Environment variables (e.g. DATABASE_HOST -> database.host)
	v.SetEnvPrefix("TASKMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also support simple env vars without prefix for Docker Compose convenience
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("smtp.host", "SMTP_HOST")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.user", "SMTP_USER")
	v.BindEnv("smtp.password", "SMTP_PASSWORD")
	v.BindEnv("smtp.from", "SMTP_FROM")
	v.BindEnv("app.url", "APP_URL")
	v.BindEnv("app.language", "APP_LANGUAGE")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("server.port", "PORT")

	// Try loading config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // Not required

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" dbname=" + d.Name +
		" user=" + d.User +
		" password=" + d.Password +
		" sslmode=disable"
}
