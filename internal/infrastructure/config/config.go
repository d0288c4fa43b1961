package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	GRPCServer GRPCServer
	Database   Database
	Prometheus Prometheus
	Redis      Redis
	Auth       Auth
	Upload     Upload
}

type HTTPServer struct {
	Address        string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	StaticDir      string
}

type GRPCServer struct {
	Address string
	Port    int
}

type Database struct {
	Username      string
	Password      string
	Host          string
	Port          string
	DbName        string
	MaxConns      int32
	RunMigrations bool
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Enabled  bool
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

type Auth struct {
	JWTSecret string
}

type Upload struct {
	Enabled   bool
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	MaxSize   int64
}

func MustLoad() *Config {
	// .env is optional, variables already in the environment win.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("board")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 3000)
	viper.SetDefault("http_server.read_timeout", 10*time.Second)
	viper.SetDefault("http_server.write_timeout", 30*time.Second)
	viper.SetDefault("http_server.allowed_origins", []string{})
	viper.SetDefault("http_server.static_dir", "")

	viper.SetDefault("grpc_server.address", "0.0.0.0")
	viper.SetDefault("grpc_server.port", 50060)

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "board-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "board")
	viper.SetDefault("database.max_conns", 10)
	viper.SetDefault("database.run_migrations", true)

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9110)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.ttl", 30*time.Minute)

	viper.SetDefault("auth.jwt_secret", "")

	viper.SetDefault("upload.enabled", false)
	viper.SetDefault("upload.cloud_name", "")
	viper.SetDefault("upload.api_key", "")
	viper.SetDefault("upload.api_secret", "")
	viper.SetDefault("upload.folder", "post_pictures")
	viper.SetDefault("upload.max_size", 10<<20)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %s", err)
			os.Exit(1)
		}
		log.Printf("Config file not found, using defaults and environment")
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address:        viper.GetString("http_server.address"),
			Port:           viper.GetInt("http_server.port"),
			ReadTimeout:    viper.GetDuration("http_server.read_timeout"),
			WriteTimeout:   viper.GetDuration("http_server.write_timeout"),
			AllowedOrigins: viper.GetStringSlice("http_server.allowed_origins"),
			StaticDir:      viper.GetString("http_server.static_dir"),
		},
		GRPCServer: GRPCServer{
			Address: viper.GetString("grpc_server.address"),
			Port:    viper.GetInt("grpc_server.port"),
		},
		Database: Database{
			Username:      viper.GetString("database.username"),
			Password:      viper.GetString("database.password"),
			Host:          viper.GetString("database.host"),
			Port:          viper.GetString("database.port"),
			DbName:        viper.GetString("database.db_name"),
			MaxConns:      viper.GetInt32("database.max_conns"),
			RunMigrations: viper.GetBool("database.run_migrations"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:  viper.GetBool("redis.enabled"),
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
			TTL:      viper.GetDuration("redis.ttl"),
		},
		Auth: Auth{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		Upload: Upload{
			Enabled:   viper.GetBool("upload.enabled"),
			CloudName: viper.GetString("upload.cloud_name"),
			APIKey:    viper.GetString("upload.api_key"),
			APISecret: viper.GetString("upload.api_secret"),
			Folder:    viper.GetString("upload.folder"),
			MaxSize:   viper.GetInt64("upload.max_size"),
		},
	}

	if config.Auth.JWTSecret == "" {
		log.Printf("auth.jwt_secret must be set")
		os.Exit(1)
	}

	return config
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.DbName)
}
