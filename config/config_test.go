package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryConfig(env, secret string) *Config {
	cfg := &Config{}
	cfg.Env.Env = env
	cfg.Store.Driver = StoreDriverMemory
	cfg.SecretKey.Access = secret
	cfg.ApplyDefaults()

	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, EnvProduction, cfg.Env.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 8, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "auth-token", cfg.Session.CookieName)
	assert.Equal(t, "/login", cfg.Gate.LoginPath)
	assert.Equal(t, []string{"/login", "/signup", "/password-reset"}, cfg.Gate.PublicPaths)
	assert.Equal(t, []string{"/api", "/static", "/_image"}, cfg.Gate.BypassPrefixes)
	assert.Contains(t, cfg.Gate.BypassExtensions, ".png")
}

func TestApplyDefaults_KeepsExplicitEmptyPublicPaths(t *testing.T) {
	cfg := &Config{}
	cfg.Gate.PublicPaths = []string{}
	cfg.ApplyDefaults()

	assert.Empty(t, cfg.Gate.PublicPaths)
}

func TestValidate_SecretRequiredOutsideDevelopment(t *testing.T) {
	err := newMemoryConfig("production", "").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretKey.access")

	assert.NoError(t, newMemoryConfig("production", "s3cr3t").Validate())
	assert.NoError(t, newMemoryConfig(EnvDevelopment, "").Validate())
}

func TestValidate_UnsetEnvRequiresSecret(t *testing.T) {
	cfg := &Config{}
	cfg.Store.Driver = StoreDriverMemory
	cfg.ApplyDefaults()

	require.False(t, cfg.IsDevelopment())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretKey.access")
}

func TestValidate_RejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"driver", func(c *Config) { c.Store.Driver = "sqlite" }, "store.driver"},
		{"postgres section", func(c *Config) { c.Store.Driver = StoreDriverPostgres }, "postgres section"},
		{"bcrypt cost", func(c *Config) { c.Auth.BcryptCost = 2 }, "bcryptCost"},
		{"ttl", func(c *Config) { c.Auth.TokenTTL = -time.Second }, "tokenTTL"},
		{"login path", func(c *Config) { c.Gate.LoginPath = "login" }, "loginPath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newMemoryConfig("production", "s3cr3t")
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, newMemoryConfig("Development", "").IsDevelopment())
	assert.False(t, newMemoryConfig("staging", "x").IsDevelopment())
}
