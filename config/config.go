package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"

	"veluna/internal/domain/constants"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "2MB"
	defaultNamespace          = "veluna"
	defaultStorageProvider    = constants.StorageProviderMemory
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// Storage selects the persistent key-value backend shared by every session
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Sync holds the polling cadence for each synced area
	Sync *SyncConfig `json:"sync" yaml:"sync"`

	// ChatNotify configures the outbound chat mirror
	ChatNotify *ChatNotifyConfig `json:"chatNotify" yaml:"chatNotify"`

	// Admin bootstraps the first back-office account
	Admin *AdminConfig `json:"admin" yaml:"admin"`

	// QRCode configuration for promo code QR images
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig defines the KeyedStore backend
type StorageConfig struct {
	// Provider is one of memory, file, redis, mongo, postgres
	Provider string `json:"provider" yaml:"provider"`

	// Namespace prefixes every storage key (<ns>_orders, <ns>_cart, ...)
	Namespace string `json:"namespace" yaml:"namespace"`

	// Origin identifies this process among writers sharing the backend.
	// A random one is generated when empty.
	Origin string `json:"origin" yaml:"origin"`

	File     *FileStorageConfig  `json:"file" yaml:"file"`
	Redis    *RedisStorageConfig `json:"redis" yaml:"redis"`
	Mongo    *MongoStorageConfig `json:"mongo" yaml:"mongo"`
	Postgres *postgres.DBConn    `json:"postgres" yaml:"postgres"`
}

type FileStorageConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

type RedisStorageConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	PoolSize int    `json:"poolSize" yaml:"poolSize"`
}

type MongoStorageConfig struct {
	URI        string `json:"uri" yaml:"uri"`
	Database   string `json:"database" yaml:"database"`
	Collection string `json:"collection" yaml:"collection"`
}

// SyncConfig defines polling intervals. Zero values fall back to defaults.
type SyncConfig struct {
	ProductInterval   time.Duration `json:"productInterval" yaml:"productInterval"`
	SettingsInterval  time.Duration `json:"settingsInterval" yaml:"settingsInterval"`
	ChatInterval      time.Duration `json:"chatInterval" yaml:"chatInterval"`
	ChatListInterval  time.Duration `json:"chatListInterval" yaml:"chatListInterval"`
	RelayChatInterval time.Duration `json:"relayChatInterval" yaml:"relayChatInterval"`

	// ChatIdleTimeout unmounts a user's chat view after this long without use
	ChatIdleTimeout time.Duration `json:"chatIdleTimeout" yaml:"chatIdleTimeout"`
}

// ChatNotifyConfig defines where user chat messages are mirrored
type ChatNotifyConfig struct {
	// Provider is one of http, pubsub, kafka. Empty disables mirroring.
	Provider string        `json:"provider" yaml:"provider"`
	BaseURL  string        `json:"baseUrl" yaml:"baseUrl"`
	Token    string        `json:"token" yaml:"token"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`

	// Google Pub/Sub
	ProjectID string `json:"projectId" yaml:"projectId"`
	TopicID   string `json:"topicId" yaml:"topicId"`

	// Kafka
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

// AdminConfig defines the bootstrap admin account
type AdminConfig struct {
	Email    string        `json:"email" yaml:"email"`
	Password string        `json:"password" yaml:"password"`
	TokenTTL time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// ENV_VAR_NAME is mapped onto the existing YAML key casing,
	// e.g. CHATNOTIFY_BASEURL -> chatNotify.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Storage.Postgres != nil {
		cfg.Storage.Postgres.Replicas = postgresReplicasFromEnv()
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = defaultStorageProvider
	}
	if cfg.Storage.Namespace == "" {
		cfg.Storage.Namespace = defaultNamespace
	}

	if cfg.Sync == nil {
		cfg.Sync = &SyncConfig{}
	}
	cfg.Sync.ProductInterval = orDefault(cfg.Sync.ProductInterval, 500*time.Millisecond)
	cfg.Sync.SettingsInterval = orDefault(cfg.Sync.SettingsInterval, 500*time.Millisecond)
	cfg.Sync.ChatInterval = orDefault(cfg.Sync.ChatInterval, 3*time.Second)
	cfg.Sync.ChatListInterval = orDefault(cfg.Sync.ChatListInterval, 5*time.Second)
	cfg.Sync.RelayChatInterval = orDefault(cfg.Sync.RelayChatInterval, time.Second)
	cfg.Sync.ChatIdleTimeout = orDefault(cfg.Sync.ChatIdleTimeout, 10*time.Minute)
}

// postgresReplicasFromEnv reads STORAGE_POSTGRES_REPLICAS_{i}_{HOST,PORT,USERNAME,PASSWORD}
// until the first index missing a host or port.
func postgresReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "STORAGE_POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host, port := os.Getenv(prefix+"HOST"), os.Getenv(prefix+"PORT")
		if host == "" || port == "" {
			return replicas
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}

	return d
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
