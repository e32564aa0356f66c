package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/farmlink/backend/pkg/storage"
	"github.com/mitchellh/mapstructure"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer APIServerConfigs `toml:"api_server"`
	Database  DatabaseConfigs  `toml:"database"`
	Storage   storage.Configs  `toml:"storage"`
	File      FileConfigs      `toml:"file"`
	Redis     RedisConfigs     `toml:"redis"`
	Kafka     KafkaConfigs     `toml:"kafka"`
	Log       LogConfigs       `toml:"log"`
}

type DatabaseConfigs struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// Enabled is false when no database is configured. File records are then
// not persisted.
func (d DatabaseConfigs) Enabled() bool {
	return d.Driver == "sqlite" || d.Host != ""
}

func (d DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Database
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	AllowedOrigins []string `toml:"allowed_origins"`
}

type FileConfigs struct {
	// MaxSize is the largest accepted image in MB.
	MaxSize      int           `toml:"max_size"`
	// MaxBatch caps the images of one batch request, 0 means no cap.
	MaxBatch     int           `toml:"max_batch"`
	FetchTimeout time.Duration `toml:"fetch_timeout"`
}

func (f FileConfigs) MaxSizeBytes() int64 {
	return int64(f.MaxSize) << 20
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr     string `toml:"addr"`
	ClientID string `toml:"client_id"`
}

func (k KafkaConfigs) Brokers() []string {
	var brokers []string
	for _, addr := range strings.Split(k.Addr, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			brokers = append(brokers, addr)
		}
	}
	return brokers
}

type LogConfigs struct {
	Level string `toml:"level"`
}

func Default() Configs {
	return Configs{
		Env: "local",
		ApiServer: APIServerConfigs{
			ServerConfigs:  ServerConfigs{Port: "8080"},
			AllowedOrigins: []string{"*"},
		},
		File: FileConfigs{
			MaxSize:      10,
			MaxBatch:     20,
			FetchTimeout: 30 * time.Second,
		},
		Kafka: KafkaConfigs{ClientID: "media"},
		Log:   LogConfigs{Level: "info"},
	}
}

// Load starts from Default, applies the TOML file at path if path is not
// empty, then applies environment overrides.
func Load(path string) (Configs, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

// envOverrides maps environment variables to "<section>.<key>" TOML paths.
var envOverrides = map[string]string{
	"ENV":                        "env",
	"API_SERVER_HOST":            "api_server.host",
	"API_SERVER_PORT":            "api_server.port",
	"API_SERVER_ALLOWED_ORIGINS": "api_server.allowed_origins",
	"DATABASE_DRIVER":            "database.driver",
	"DATABASE_HOST":              "database.host",
	"DATABASE_PORT":              "database.port",
	"DATABASE_NAME":              "database.database",
	"DATABASE_USER":              "database.user",
	"DATABASE_PASSWORD":          "database.password",
	"STORAGE_DRIVER":             "storage.driver",
	"STORAGE_ENDPOINT":           "storage.endpoint",
	"STORAGE_PUBLIC_ENDPOINT":    "storage.public_endpoint",
	"STORAGE_ACCESS_KEY":         "storage.access_key",
	"STORAGE_SECRET_KEY":         "storage.secret_key",
	"STORAGE_REGION":             "storage.region",
	"STORAGE_SSL_DISABLED":       "storage.ssl_disabled",
	"FILE_MAX_SIZE":              "file.max_size",
	"FILE_MAX_BATCH":             "file.max_batch",
	"FILE_FETCH_TIMEOUT":         "file.fetch_timeout",
	"REDIS_ADDR":                 "redis.addr",
	"KAFKA_ADDR":                 "kafka.addr",
	"KAFKA_CLIENT_ID":            "kafka.client_id",
	"LOG_LEVEL":                  "log.level",
}

func applyEnv(cfg *Configs) error {
	for key, path := range envOverrides {
		value, ok := os.LookupEnv(key)
		if !ok {
			continue
		}

		if err := decodeOverride(cfg, path, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

// decodeOverride writes value at path, converting it to the field type.
// Lists are comma separated.
func decodeOverride(cfg *Configs, path, value string) error {
	var input any = value
	parts := strings.Split(path, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		input = map[string]any{parts[i]: input}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		TagName:          "toml",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Squash:           true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
