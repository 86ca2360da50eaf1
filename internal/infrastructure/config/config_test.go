package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":  "a",
		"REFRESH_TOKEN_SECRET": "b",
	}))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, 15*time.Minute, cfg.Token.AccessExpireIn.Duration())
	require.Equal(t, 7*24*time.Hour, cfg.Token.RefreshExpireIn.Duration())
	require.Equal(t, 7*24*time.Hour, cfg.Token.CookieMaxAge)
	require.Equal(t, "ecom", cfg.Mongo.Database)
	require.Equal(t, 4, cfg.AuditWorkers)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Empty(t, cfg.RoleManagePermission)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":    "a",
		"REFRESH_TOKEN_SECRET":   "b",
		"APP_ENV":                "production",
		"ACCESS_TOKEN_EXPIRE_IN": "5m",
		"ROLE_MANAGE_PERMISSION": "role:manage",
		"REDIS_DB":               "2",
	}))
	require.NoError(t, err)

	require.False(t, cfg.IsDevelopment())
	require.Equal(t, 5*time.Minute, cfg.Token.AccessExpireIn.Duration())
	require.Equal(t, "role:manage", cfg.RoleManagePermission)
	require.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_DayLifetimes(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":     "a",
		"REFRESH_TOKEN_SECRET":    "b",
		"ACCESS_TOKEN_EXPIRE_IN":  "1d",
		"REFRESH_TOKEN_EXPIRE_IN": "7d",
	}))
	require.NoError(t, err)

	require.Equal(t, 24*time.Hour, cfg.Token.AccessExpireIn.Duration())
	require.Equal(t, 7*24*time.Hour, cfg.Token.RefreshExpireIn.Duration())
}

func TestLoad_InvalidLifetime(t *testing.T) {
	for _, val := range []string{"xd", "-1d", "soon"} {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
			"ACCESS_TOKEN_SECRET":    "a",
			"REFRESH_TOKEN_SECRET":   "b",
			"ACCESS_TOKEN_EXPIRE_IN": val,
		}))
		require.Error(t, err, val)
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET": "a",
	}))
	require.Error(t, err)
}

func TestIsDevelopment_IgnoresCase(t *testing.T) {
	for _, env := range []string{"development", "DEVELOPMENT", "Development"} {
		require.True(t, (&Config{Env: env}).IsDevelopment(), env)
	}
	require.False(t, (&Config{Env: "staging"}).IsDevelopment())
}
