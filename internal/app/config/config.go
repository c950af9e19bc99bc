package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type CommerceConfig struct {
	BaseURL        string        `yaml:"base_url" env:"COMMERCE_BASE_URL" env-required:"true"`
	APIToken       string        `yaml:"api_token" env:"COMMERCE_API_TOKEN"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"COMMERCE_REQUEST_TIMEOUT" env-default:"10s"`
}

type MembershipCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"MEMBERSHIP_CACHE_TTL" env-default:"5m"`
}

type CheckoutConfig struct {
	RedirectURL   string        `yaml:"redirect_url" env:"CHECKOUT_REDIRECT_URL" env-default:"/checkout"`
	LockTTL       time.Duration `yaml:"lock_ttl" env:"CHECKOUT_LOCK_TTL" env-default:"30s"`
	DefaultLocale string        `yaml:"default_locale" env:"CHECKOUT_DEFAULT_LOCALE" env-default:"de"`
}

type Config struct {
	Env             string                `yaml:"env" env:"ENV" env-default:"local"`
	ServiceName     string                `yaml:"service_name" env:"SERVICE_NAME" env-default:"storefront_service"`
	HTTPServer      HTTPServerConfig      `yaml:"http_server"`
	GRPCServer      GRPCServerConfig      `yaml:"grpc_server"`
	Commerce        CommerceConfig        `yaml:"commerce"`
	MongoDB         MongoDBConfig         `yaml:"mongo"`
	Redis           RedisConfig           `yaml:"redis"`
	NATS            NATSConfig            `yaml:"nats"`
	Logger          LoggerConfig          `yaml:"logger"`
	Metrics         MetricsConfig         `yaml:"metrics"`
	Tracing         TracingConfig         `yaml:"tracing"`
	Checkout        CheckoutConfig        `yaml:"checkout"`
	MembershipCache MembershipCacheConfig `yaml:"membership_cache"`
}

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT_STOREFRONT_SERVICE" env-default:"8085"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env-default:"15s"`
}

type GRPCServerConfig struct {
	Port              string        `yaml:"port" env:"GRPC_PORT_STOREFRONT_SERVICE" env-default:"50058"`
	MaxConnectionIdle time.Duration `yaml:"max_connection_idle" env-default:"15m"`
	TimeoutGraceful   time.Duration `yaml:"timeout_graceful_shutdown" env-default:"15s"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"storefront_service_db"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type MetricsConfig struct {
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9095"`
}

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		err := cleanenv.ReadEnv(&cfg)
		if err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			log.Printf("Warning: Config file not found at %s, attempting to load from environment variables only.", path)
			errEnv := cleanenv.ReadEnv(&cfg)
			if errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH_STOREFRONT_SERVICE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
