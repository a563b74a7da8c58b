package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"Server"`
	Database DatabaseConfig `mapstructure:"Database"`
	Admin    AdminConfig    `mapstructure:"Admin"`
	Media    MediaConfig    `mapstructure:"Media"`
}

type ServerConfig struct {
	Port            string   `mapstructure:"Port"`
	FrontendOrigins []string `mapstructure:"FrontendOrigins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"Host"`
	Port     string `mapstructure:"Port"`
	User     string `mapstructure:"User"`
	Password string `mapstructure:"Password"`
	Name     string `mapstructure:"Name"`
	SSLMode  string `mapstructure:"SSLMode"`
}

type AdminConfig struct {
	APIKey string `mapstructure:"APIKey"`
}

type MediaConfig struct {
	PublicRoot    string `mapstructure:"PublicRoot"`
	PrivateRoot   string `mapstructure:"PrivateRoot"`
	PublicBaseURL string `mapstructure:"PublicBaseURL"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	// Привязываем переменные окружения
	v.BindEnv("Database.Host", "DATABASE_HOST")
	v.BindEnv("Database.Port", "DATABASE_PORT")
	v.BindEnv("Database.User", "DATABASE_USER")
	v.BindEnv("Database.Password", "DATABASE_PASSWORD")
	v.BindEnv("Database.Name", "DATABASE_NAME")
	v.BindEnv("Database.SSLMode", "DATABASE_SSLMODE")
	v.BindEnv("Server.Port", "HTTP_PORT")
	v.BindEnv("Server.FrontendOrigins", "FRONTEND_ORIGINS")
	v.BindEnv("Admin.APIKey", "ADMIN_API_KEY")
	v.BindEnv("Media.PublicRoot", "PUBLIC_MEDIA_ROOT")
	v.BindEnv("Media.PrivateRoot", "PRIVATE_MEDIA_ROOT")
	v.BindEnv("Media.PublicBaseURL", "PUBLIC_MEDIA_BASE_URL")

	// Читаем конфигурацию из файла
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Проверяем переменные окружения напрямую если конфигурация неполная
	if cfg.Database.Host == "" {
		cfg.Database.Host = v.GetString("DATABASE_HOST")
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = v.GetString("DATABASE_PORT")
	}
	if cfg.Database.User == "" {
		cfg.Database.User = v.GetString("DATABASE_USER")
	}
	if cfg.Database.Password == "" {
		cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = v.GetString("DATABASE_NAME")
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	}
	if cfg.Admin.APIKey == "" {
		cfg.Admin.APIKey = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Media.PublicRoot == "" {
		cfg.Media.PublicRoot = v.GetString("PUBLIC_MEDIA_ROOT")
	}
	if cfg.Media.PrivateRoot == "" {
		cfg.Media.PrivateRoot = v.GetString("PRIVATE_MEDIA_ROOT")
	}
	if cfg.Media.PublicBaseURL == "" {
		cfg.Media.PublicBaseURL = v.GetString("PUBLIC_MEDIA_BASE_URL")
	}
	if len(cfg.Server.FrontendOrigins) == 0 {
		if raw := v.GetString("FRONTEND_ORIGINS"); raw != "" {
			cfg.Server.FrontendOrigins = strings.Split(raw, ",")
		}
	}

	if cfg.Database.Host == "" ||
		cfg.Database.Port == "" ||
		cfg.Database.User == "" ||
		cfg.Database.Password == "" ||
		cfg.Database.Name == "" {
		return nil, fmt.Errorf("database configuration is incomplete: host=%s, port=%s, user=%s, name=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Name)
	}

	if cfg.Admin.APIKey == "" {
		return nil, fmt.Errorf("admin API key is not configured")
	}

	// Установка значений по умолчанию
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.Media.PublicRoot == "" {
		cfg.Media.PublicRoot = "./media_public"
	}
	if cfg.Media.PrivateRoot == "" {
		cfg.Media.PrivateRoot = "./uploads"
	}
	if cfg.Media.PublicBaseURL == "" {
		cfg.Media.PublicBaseURL = "/media"
	}
	if len(cfg.Server.FrontendOrigins) == 0 {
		cfg.Server.FrontendOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}

	return &cfg, nil
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}
