package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// SyncConfig carries everything the cross-system sync layer needs: where the
// peer lives, the shared secret expected on webhook calls, and the identity
// resolution fallbacks used when inbound tenant references do not line up.
type SyncConfig struct {
	// PeerBaseURL is the base URL of the opposite deployment
	// (e.g. the Dev platform when running as the CRM).
	PeerBaseURL string `mapstructure:"peer_base_url"`
	// SyncKey is the shared secret required on every inbound webhook call
	// and sent on every outbound one.
	SyncKey string `mapstructure:"sync_key"`
	// FallbackOrgSID is the organization used when an inbound tenant
	// reference does not resolve directly.
	FallbackOrgSID string `mapstructure:"fallback_org_sid"`
	// LegacySentinel is a tenant reference value still emitted by old peer
	// deployments; it short-circuits straight to the fallback organization.
	LegacySentinel string `mapstructure:"legacy_sentinel"`
	// DispatchTimeoutSeconds bounds a single outbound call so an unreachable
	// peer cannot stall the dispatching goroutine.
	DispatchTimeoutSeconds int `mapstructure:"dispatch_timeout_seconds"`
}
