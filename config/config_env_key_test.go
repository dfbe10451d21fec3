package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"storage": map[string]any{
			"provider":  "memory",
			"namespace": "veluna",
			"redis": map[string]any{
				"poolSize": 10,
			},
		},
		"chatNotify": map[string]any{
			"baseUrl": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORAGE_PROVIDER", want: "storage.provider"},
		{envKey: "STORAGE_REDIS_POOLSIZE", want: "storage.redis.poolSize"},
		{envKey: "CHATNOTIFY_BASEURL", want: "chatNotify.baseUrl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, "veluna", cfg.Storage.Namespace)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.ProductInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.SettingsInterval)
	assert.Equal(t, 3*time.Second, cfg.Sync.ChatInterval)
	assert.Equal(t, 5*time.Second, cfg.Sync.ChatListInterval)
	assert.Equal(t, time.Second, cfg.Sync.RelayChatInterval)
	assert.Equal(t, 10*time.Minute, cfg.Sync.ChatIdleTimeout)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Storage: &StorageConfig{Provider: "redis", Namespace: "shop"},
		Sync:    &SyncConfig{ChatInterval: 4 * time.Second},
	}
	applyDefaults(cfg)

	assert.Equal(t, "redis", cfg.Storage.Provider)
	assert.Equal(t, "shop", cfg.Storage.Namespace)
	assert.Equal(t, 4*time.Second, cfg.Sync.ChatInterval)
}

func TestPostgresReplicasFromEnv(t *testing.T) {
	t.Setenv("STORAGE_POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("STORAGE_POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("STORAGE_POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("STORAGE_POSTGRES_REPLICAS_0_PASSWORD", "secret")
	t.Setenv("STORAGE_POSTGRES_REPLICAS_1_HOST", "replica-b")
	t.Setenv("STORAGE_POSTGRES_REPLICAS_1_PORT", "5433")
	// index 2 has no port, so scanning stops there
	t.Setenv("STORAGE_POSTGRES_REPLICAS_2_HOST", "replica-c")

	replicas := postgresReplicasFromEnv()

	if assert.Len(t, replicas, 2) {
		assert.Equal(t, "replica-a", replicas[0].Host)
		assert.Equal(t, "5432", replicas[0].Port)
		assert.Equal(t, "reader", replicas[0].UserName)
		assert.Equal(t, "secret", replicas[0].Password)
		assert.Equal(t, "replica-b", replicas[1].Host)
		assert.Empty(t, replicas[1].UserName)
	}
}

func TestPostgresReplicasFromEnv_None(t *testing.T) {
	assert.Empty(t, postgresReplicasFromEnv())
}
