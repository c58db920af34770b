package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// Storage backends for the retention cache.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	defaultAppPort             = "8080"
	defaultAppURL              = "http://localhost:5173"
	defaultBackendTimeout      = 30 * time.Second
	defaultSubmitRatePerMinute = 10
	defaultFromEmail           = "no-reply@americantreeexperts.com"
	minAdminSecretLen          = 32
)

// build-time overrides, set with -ldflags
var (
	AppName             = "lead-service"
	LDServerContextKey  = "lead-service"
	LDServerContextKind = "service"
)

// Config is loaded once at start and passed to everything that needs it.
type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// BackendURL is the base of every tree-services backend call.
	BackendURL     string
	BackendTimeout time.Duration

	StorageBackend string
	RedisURL       string
	DatabaseURL    string

	AdminJWTSecret []byte

	SendgridAPIKey string
	NotifyEmail    string

	SubmitRatePerMinute int

	// TrustedProxies may set X-Forwarded-For and friends; empty trusts none.
	TrustedProxies utils.TrustedProxies

	// Feature-flag snapshots
	LDFlag_SendgridFromEmail     string
	LDFlag_SendLeadNotifications bool
	LDFlag_CORSHighSecurity      bool
}

// NotificationsEnabled reports whether lead notification emails can be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.LDFlag_SendLeadNotifications && c.SendgridAPIKey != "" && c.NotifyEmail != ""
}

// LoadConfig reads the environment (and a .env file, if present). Invalid
// configuration is fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		utils.Logger.Debug("Loaded environment from .env")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if sdkKey := os.Getenv("LD_SDK_KEY"); sdkKey != "" {
		if err := cfg.loadFlags(sdkKey); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to load LaunchDarkly flags")
		}
	} else {
		utils.Logger.Debug("LD_SDK_KEY not set; using flag defaults")
	}

	utils.Logger.Infof("Loaded config for %s (backend %s, storage %s)", cfg.AppName, cfg.BackendURL, cfg.StorageBackend)
	return cfg
}

// FromEnv builds a Config from getenv. Flags keep their environment defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		OrganizationName:    OrganizationName,
		AppName:             AppName,
		AppPort:             orDefault(getenv("APP_PORT"), defaultAppPort),
		AppUrl:              orDefault(getenv("APP_URL"), defaultAppURL),
		BackendURL:          strings.TrimRight(orDefault(getenv("BACKEND_URL"), utils.DefaultBackendURL), "/"),
		BackendTimeout:      defaultBackendTimeout,
		StorageBackend:      strings.ToLower(orDefault(getenv("STORAGE_BACKEND"), StorageMemory)),
		RedisURL:            getenv("REDIS_URL"),
		DatabaseURL:         getenv("DATABASE_URL"),
		AdminJWTSecret:      []byte(getenv("ADMIN_JWT_SECRET")),
		SendgridAPIKey:      getenv("SENDGRID_API_KEY"),
		NotifyEmail:         getenv("NOTIFY_EMAIL"),
		SubmitRatePerMinute: defaultSubmitRatePerMinute,

		LDFlag_SendgridFromEmail:     orDefault(getenv("SENDGRID_FROM_EMAIL"), defaultFromEmail),
		LDFlag_SendLeadNotifications: getenv("SENDGRID_API_KEY") != "",
		LDFlag_CORSHighSecurity:      !strings.EqualFold(getenv("CORS_ALLOW_LOCALHOST"), "true"),
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("BACKEND_URL %q is not an absolute URL", cfg.BackendURL)
	}

	if v := getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("BACKEND_TIMEOUT %q is not a positive duration", v)
		}
		cfg.BackendTimeout = d
	}

	if v := getenv("SUBMIT_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("SUBMIT_RATE_PER_MINUTE %q is not a positive integer", v)
		}
		cfg.SubmitRatePerMinute = n
	}

	if v := getenv("TRUSTED_PROXIES"); v != "" {
		trusted, err := utils.ParseTrustedProxies(strings.Split(v, ","))
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		cfg.TrustedProxies = trusted
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when STORAGE_BACKEND=redis")
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if len(cfg.AdminJWTSecret) < minAdminSecretLen {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET must be at least %d bytes", minAdminSecretLen)
	}

	return cfg, nil
}

// loadFlags takes a one-time snapshot of the LaunchDarkly flags.
func (c *Config) loadFlags(sdkKey string) error {
	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()

	if !ldClient.Initialized() {
		return fmt.Errorf("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	fromEmail, err := ldClient.StringVariation("sendgrid_from_email", ctx, c.LDFlag_SendgridFromEmail)
	if err != nil {
		return fmt.Errorf("sendgrid_from_email flag: %w", err)
	}
	if fromEmail != "" {
		c.LDFlag_SendgridFromEmail = fromEmail
	}
	utils.Logger.Debugf("sendgrid_from_email flag: %s", c.LDFlag_SendgridFromEmail)

	send, err := ldClient.BoolVariation("send_lead_notifications", ctx, c.LDFlag_SendLeadNotifications)
	if err != nil {
		return fmt.Errorf("send_lead_notifications flag: %w", err)
	}
	c.LDFlag_SendLeadNotifications = send
	utils.Logger.Debugf("send_lead_notifications flag: %t", send)

	highSec, err := ldClient.BoolVariation("cors_high_security", ctx, c.LDFlag_CORSHighSecurity)
	if err != nil {
		return fmt.Errorf("cors_high_security flag: %w", err)
	}
	c.LDFlag_CORSHighSecurity = highSec
	utils.Logger.Debugf("cors_high_security flag: %t", highSec)

	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
