package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"gopkg.in/yaml.v3"

	"github.com/poofware/property-records-service/internal/repositories"
	"github.com/poofware/property-records-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	StorageBackend string
	SQLitePath     string
	DBUrl          string

	StatsCronSpec   string
	ShutdownTimeout time.Duration

	// Feature-flag snapshots
	LDFlag_CORSHighSecurity   bool
	LDFlag_SeedDbWithTestData bool
}

const (
	OrganizationName    = utils.OrganizationName
	DefaultAppName      = "property-records-service"
	DefaultAppPort      = "8080"
	DefaultSQLitePath   = "property-records.db"
	DefaultStatsCron    = "@every 1m"
	DefaultShutdown     = 10 * time.Second
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

// fileConfig is the optional YAML file named by CONFIG_FILE. Env vars win
// over anything set here.
type fileConfig struct {
	AppPort         string        `yaml:"app_port"`
	AppURL          string        `yaml:"app_url"`
	StorageBackend  string        `yaml:"storage_backend"`
	SQLitePath      string        `yaml:"sqlite_path"`
	DBUrl           string        `yaml:"db_url"`
	StatsCronSpec   string        `yaml:"stats_cron_spec"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Flags           struct {
		CORSHighSecurity   bool `yaml:"cors_high_security"`
		SeedDbWithTestData bool `yaml:"seed_db_with_test_data"`
	} `yaml:"flags"`
}

// FlagSource is the part of the LaunchDarkly client config reads.
type FlagSource interface {
	BoolVariation(key string, context ldcontext.Context, defaultVal bool) (bool, error)
}

// LoadConfig reads the process environment and exits on invalid settings.
func LoadConfig() *Config {
	cfg, err := Load(os.Getenv, connectLaunchDarkly)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	utils.Logger.Infof("Loaded config for %s (storage=%s)", cfg.AppName, cfg.StorageBackend)
	return cfg
}

// Load builds a Config from getenv. dialFlags is only called when LD_SDK_KEY
// is set; it returns the flag source and a close func.
func Load(
	getenv func(string) string,
	dialFlags func(sdkKey string) (FlagSource, func(), error),
) (*Config, error) {
	appName := AppName
	if appName == "" {
		appName = DefaultAppName
	}

	var fc fileConfig
	if path := getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          appName,
		AppPort:          firstNonEmpty(getenv("APP_PORT"), fc.AppPort, DefaultAppPort),
		AppUrl:           firstNonEmpty(getenv("APP_URL_FROM_ANYWHERE"), fc.AppURL),
		StorageBackend:   strings.ToLower(firstNonEmpty(getenv("STORAGE_BACKEND"), fc.StorageBackend, repositories.BackendMemory)),
		SQLitePath:       firstNonEmpty(getenv("SQLITE_PATH"), fc.SQLitePath, DefaultSQLitePath),
		DBUrl:            firstNonEmpty(getenv("DB_URL"), fc.DBUrl),
		StatsCronSpec:    firstNonEmpty(getenv("STATS_CRON_SPEC"), fc.StatsCronSpec, DefaultStatsCron),
		ShutdownTimeout:  fc.ShutdownTimeout,

		LDFlag_CORSHighSecurity:   fc.Flags.CORSHighSecurity,
		LDFlag_SeedDbWithTestData: fc.Flags.SeedDbWithTestData,
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdown
	}

	if _, err := strconv.Atoi(cfg.AppPort); err != nil {
		return nil, fmt.Errorf("APP_PORT %q is not a number", cfg.AppPort)
	}
	switch cfg.StorageBackend {
	case repositories.BackendMemory, repositories.BackendSQLite:
	case repositories.BackendPostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DB_URL is required for the postgres storage backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	var err error
	if cfg.LDFlag_CORSHighSecurity, err = envBool(getenv, "CORS_HIGH_SECURITY", cfg.LDFlag_CORSHighSecurity); err != nil {
		return nil, err
	}
	if cfg.LDFlag_SeedDbWithTestData, err = envBool(getenv, "SEED_DB_WITH_TEST_DATA", cfg.LDFlag_SeedDbWithTestData); err != nil {
		return nil, err
	}

	if sdkKey := getenv("LD_SDK_KEY"); sdkKey != "" {
		if err := loadFlags(cfg, sdkKey, dialFlags); err != nil {
			return nil, err
		}
	}

	if cfg.LDFlag_CORSHighSecurity && cfg.AppUrl == "" {
		return nil, fmt.Errorf("APP_URL_FROM_ANYWHERE is required when cors_high_security is on")
	}

	return cfg, nil
}

func loadFlags(cfg *Config, sdkKey string, dialFlags func(string) (FlagSource, func(), error)) error {
	flags, closeFlags, err := dialFlags(sdkKey)
	if err != nil {
		return fmt.Errorf("failed to create LaunchDarkly client: %w", err)
	}
	defer closeFlags()

	kind := LDServerContextKind
	if kind == "" {
		kind = "service"
	}
	key := LDServerContextKey
	if key == "" {
		key = cfg.AppName
	}
	ctx := ldcontext.NewWithKind(ldcontext.Kind(kind), key)

	corsHighSecurityFlag, err := flags.BoolVariation("cors_high_security", ctx, cfg.LDFlag_CORSHighSecurity)
	if err != nil {
		return fmt.Errorf("error retrieving cors_high_security flag: %w", err)
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurityFlag)

	seedFlag, err := flags.BoolVariation("seed_db_with_test_data", ctx, cfg.LDFlag_SeedDbWithTestData)
	if err != nil {
		return fmt.Errorf("error retrieving seed_db_with_test_data flag: %w", err)
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", seedFlag)

	cfg.LDFlag_CORSHighSecurity = corsHighSecurityFlag
	cfg.LDFlag_SeedDbWithTestData = seedFlag
	return nil
}

func connectLaunchDarkly(sdkKey string) (FlagSource, func(), error) {
	client, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		if client != nil {
			client.Close()
		}
		return nil, nil, err
	}
	if !client.Initialized() {
		client.Close()
		return nil, nil, fmt.Errorf("LaunchDarkly client failed to initialize")
	}
	return client, func() { client.Close() }, nil
}

func envBool(getenv func(string) string, key string, fallback bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s %q is not a boolean", key, raw)
	}
	return v, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) Close() {}
