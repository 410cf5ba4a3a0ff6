// Package config loads the server configuration from a YAML file or,
// when no file exists, from environment variables.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	DefaultConfigPath = "/data/foodgram.yaml"
	ConfigPathEnv     = "FOODGRAM_CONFIG"

	appSecretBytes     = 32
	appSecretFilePerms = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	defaultHostOrigin   = "http://localhost:8080"
	defaultListenAddr   = ":8080"
	defaultSecretPath   = "/data/secret"
	defaultDBHost       = "localhost"
	defaultDBPort       = 5432
	defaultVolume       = "/data/media"
	defaultURLPrefix    = "/media"
	defaultPageLimit    = 6
	defaultCacheTTLSecs = 600
)

type AppSecretValue string

func (a *AppSecretValue) Validate() error {
	if a == nil {
		return errors.New("secret should not be nil")
	}
	if len([]byte(*a)) < appSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

func splitFieldList(param string) []string {
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing is a cross-field validator attached to a placeholder
// field. It passes when the fields named in its parameter are either all
// zero or all non-zero. Nil pointers and interfaces count as zero. An
// unknown field name or an empty parameter fails validation.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false
	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false
		}
		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}
		if hasZero && hasNonZero {
			return false
		}
	}
	return true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
	return v
}

var groupFields = map[string]string{
	"Database":    "Port, Host, Database, User, and Password",
	"ObjectStore": "Endpoint, Bucket, AccessKey, and SecretKey",
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() != "allOrNothing" {
			continue
		}
		// "Config.ObjectStore.Validate" -> "ObjectStore"
		parts := strings.Split(e.Namespace(), ".")
		var structName string
		if len(parts) >= 2 {
			structName = parts[len(parts)-2]
		}
		fields, ok := groupFields[structName]
		if !ok {
			fields = "all related fields"
		}
		return fmt.Errorf(
			"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
			structName, fields)
	}
	return err
}

type AppSecret struct {
	Value   *AppSecretValue `yaml:"value" validate:"omitempty,validateFn"`
	Path    string          `yaml:"path" validate:"omitempty,filepath"`
	Version string          `yaml:"version"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Port Host Database User Password"`
}

// Fileserver is the local volume recipe images are written to when no
// object store is configured.
type Fileserver struct {
	Volume    string `yaml:"volume"`
	URLPrefix string `yaml:"url_prefix"`
}

// ObjectStore is an S3-compatible bucket for recipe images.
type ObjectStore struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,hostname_port|hostname_rfc1123"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url" validate:"omitempty,url"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Endpoint Bucket AccessKey SecretKey"`
}

func (o ObjectStore) Enabled() bool {
	return o.Endpoint != ""
}

// Redis caches catalog reads. Caching is disabled when Addr is empty.
type Redis struct {
	Addr       string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db" validate:"gte=0"`
	TTLSeconds int    `yaml:"ttl_seconds" validate:"gte=0"`
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}

type Pagination struct {
	DefaultLimit int `yaml:"default_limit" validate:"gte=1,lte=100"`
}

type Config struct {
	AppSecret   AppSecret   `yaml:"app_secret"`
	Database    Database    `yaml:"database"`
	Fileserver  Fileserver  `yaml:"fileserver"`
	ObjectStore ObjectStore `yaml:"object_store"`
	Redis       Redis       `yaml:"redis"`
	Pagination  Pagination  `yaml:"pagination"`
	HostOrigin  string      `yaml:"host_origin" validate:"url"`
	ListenAddr  string      `yaml:"listen_addr" validate:"hostname_port"`
	Env         string      `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
	LogLevel    string      `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

// loadAppSecret fills in the app secret from its file, creating the file
// with a fresh secret on first start.
func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != nil {
		return nil
	}

	var secret string
	if info, err := os.Lstat(config.AppSecret.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking secret path: %w", err)
		}

		file, err := os.OpenFile(config.AppSecret.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
		if err != nil {
			return fmt.Errorf("creating secret file: %w", err)
		}
		defer func() { _ = file.Close() }()

		secret, err = newAppSecret()
		if err != nil {
			return fmt.Errorf("generating new app secret: %w", err)
		}
		if _, err := file.WriteString(secret); err != nil {
			return fmt.Errorf("writing secret file: %w", err)
		}
	} else {
		if info.IsDir() {
			return fmt.Errorf("expected file, got directory at %q", config.AppSecret.Path)
		}
		data, err := os.ReadFile(config.AppSecret.Path)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		secret = string(data)
	}

	val := AppSecretValue(secret)
	config.AppSecret.Value = &val
	return nil
}

func applyDefaults(config *Config) {
	if config.AppSecret.Path == "" {
		config.AppSecret.Path = defaultSecretPath
	}
	if config.AppSecret.Version == "" {
		config.AppSecret.Version = "1"
	}
	if config.Env == "" {
		config.Env = EnvDev
	}
	if config.LogLevel == "" {
		if config.Env == EnvProd {
			config.LogLevel = "info"
		} else {
			config.LogLevel = "debug"
		}
	}
	if config.HostOrigin == "" {
		config.HostOrigin = defaultHostOrigin
	}
	if config.ListenAddr == "" {
		config.ListenAddr = defaultListenAddr
	}
	if config.Database.Host == "" {
		config.Database.Host = defaultDBHost
	}
	if config.Database.Port == 0 {
		config.Database.Port = defaultDBPort
	}
	if config.Fileserver.Volume == "" {
		config.Fileserver.Volume = defaultVolume
	}
	if config.Fileserver.URLPrefix == "" {
		config.Fileserver.URLPrefix = defaultURLPrefix
	}
	if config.Redis.TTLSeconds == 0 {
		config.Redis.TTLSeconds = defaultCacheTTLSecs
	}
	if config.Pagination.DefaultLimit == 0 {
		config.Pagination.DefaultLimit = defaultPageLimit
	}
}

func finish(config *Config) error {
	applyDefaults(config)
	if err := newValidator().Struct(config); err != nil {
		return formatValidationError(err)
	}
	if err := loadAppSecret(config); err != nil {
		return fmt.Errorf("loading app secret: %w", err)
	}
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadInt(key string, bitSize int) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	return n, nil
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env:        os.Getenv("ENV"),
		HostOrigin: os.Getenv("HOST_ORIGIN"),
		ListenAddr: os.Getenv("LISTEN_ADDR"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		AppSecret: AppSecret{
			Path:    os.Getenv("APP_SECRET_PATH"),
			Version: os.Getenv("APP_SECRET_VERSION"),
		},
		Database: Database{
			Host:     loadWithDefault("DATABASE_HOST", defaultDBHost),
			Database: os.Getenv("DATABASE"),
			User:     os.Getenv("DATABASE_USER"),
			Password: os.Getenv("DATABASE_PASSWORD"),
		},
		Fileserver: Fileserver{
			Volume:    os.Getenv("FILESERVER_VOLUME"),
			URLPrefix: os.Getenv("FILESERVER_URL_PREFIX"),
		},
		ObjectStore: ObjectStore{
			Endpoint:  os.Getenv("OBJECT_STORE_ENDPOINT"),
			Bucket:    os.Getenv("OBJECT_STORE_BUCKET"),
			AccessKey: os.Getenv("OBJECT_STORE_ACCESS_KEY"),
			SecretKey: os.Getenv("OBJECT_STORE_SECRET_KEY"),
			PublicURL: os.Getenv("OBJECT_STORE_PUBLIC_URL"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	if secret := os.Getenv("APP_SECRET"); secret != "" {
		val := AppSecretValue(secret)
		conf.AppSecret.Value = &val
	}

	port, err := strconv.ParseUint(loadWithDefault("DATABASE_PORT", strconv.Itoa(defaultDBPort)), 10, 16)
	if err != nil {
		return conf, fmt.Errorf("invalid DATABASE_PORT: %w", err)
	}
	conf.Database.Port = uint16(port)

	if raw := os.Getenv("OBJECT_STORE_USE_SSL"); raw != "" {
		useSSL, err := strconv.ParseBool(raw)
		if err != nil {
			return conf, fmt.Errorf("invalid OBJECT_STORE_USE_SSL (%q): %w", raw, err)
		}
		conf.ObjectStore.UseSSL = useSSL
	}

	db, err := loadInt("REDIS_DB", 32)
	if err != nil {
		return conf, err
	}
	conf.Redis.DB = int(db)

	ttl, err := loadInt("REDIS_TTL_SECONDS", 32)
	if err != nil {
		return conf, err
	}
	conf.Redis.TTLSeconds = int(ttl)

	limit, err := loadInt("PAGINATION_DEFAULT_LIMIT", 32)
	if err != nil {
		return conf, err
	}
	conf.Pagination.DefaultLimit = int(limit)

	if err := finish(&conf); err != nil {
		return conf, err
	}
	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := finish(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return !f.IsDir()
}

// Path returns the config file location: override when set, then
// FOODGRAM_CONFIG, then the default path.
func Path(override string) string {
	if override != "" {
		return override
	}
	return loadWithDefault(ConfigPathEnv, DefaultConfigPath)
}

// LoadConfig reads the config file at path if it exists and falls back
// to environment variables otherwise.
func LoadConfig(path string) (Config, error) {
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}
	return loadConfigFromEnv()
}
