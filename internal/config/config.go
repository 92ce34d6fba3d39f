// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// ResetConfig gobierna el ciclo de vida de los tokens de restablecimiento.
// Todos los tokens comparten el mismo TTL configurado.
type ResetConfig struct {
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type TokenStoreConfig struct {
	Type string `mapstructure:"type"` // "memory" | "redis"
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "smtp" | "ses" | "log"
	From string `mapstructure:"from"`
}

type SMTPConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	From        string        `mapstructure:"from"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" | "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	App        AppConfig        `mapstructure:"app"`
	Reset      ResetConfig      `mapstructure:"reset"`
	TokenStore TokenStoreConfig `mapstructure:"token_store"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mailer     MailerConfig     `mapstructure:"mailer"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	SES        SESConfig        `mapstructure:"ses"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("PORTAL")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("smtp.password", "SMTP_PASSWORD")
	viper.BindEnv("ses.secret_access_key", "SES_SECRET_ACCESS_KEY")
	viper.BindEnv("redis.addr", "REDIS_ADDR")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- defaults ---
	if Cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		Cfg.Server.Port = ":8080"
	}
	if Cfg.App.Name == "" {
		Cfg.App.Name = "Portal Creditos"
	}
	if Cfg.App.FrontendURL == "" {
		log.Println("Frontend URL not set, using default 'http://localhost:3000'")
		Cfg.App.FrontendURL = "http://localhost:3000"
	}
	if Cfg.Reset.TokenTTL <= 0 {
		log.Println("Reset token TTL not set or invalid, using default '1h'")
		Cfg.Reset.TokenTTL = time.Hour
	}
	if Cfg.Reset.SweepInterval <= 0 {
		log.Println("Reset sweep interval not set or invalid, using default '10m'")
		Cfg.Reset.SweepInterval = 10 * time.Minute
	}
	if Cfg.TokenStore.Type == "" {
		Cfg.TokenStore.Type = "memory"
	}
	if Cfg.Mailer.Type == "" {
		log.Println("Mailer type not set, using default 'log'")
		Cfg.Mailer.Type = "log"
	}
	if Cfg.SMTP.SendTimeout <= 0 {
		Cfg.SMTP.SendTimeout = 15 * time.Second
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		Cfg.JWT.AccessTokenTTL = 15 * time.Minute
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Token Store: %s", Cfg.TokenStore.Type)
	log.Printf("Mailer: %s", Cfg.Mailer.Type)
	log.Printf("Reset Token TTL: %s", Cfg.Reset.TokenTTL)

	return nil
}
