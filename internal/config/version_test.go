package config

import (
	"encoding/json"
	"testing"
)

func TestParseVersionedConfig_LegacyConfig(t *testing.T) {
	// Legacy config without version field
	legacyJSON := `{
		"dataDir": "/legacy/data",
		"logLevel": "debug",
		"storage": {
			"backend": "sqlite"
		}
	}`

	cfg, err := ParseVersionedConfig([]byte(legacyJSON))
	if err != nil {
		t.Fatalf("Failed to parse legacy config: %v", err)
	}

	if cfg.Storage.Dir != "/legacy/data" {
		t.Errorf("Expected Storage.Dir '/legacy/data', got '%s'", cfg.Storage.Dir)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Expected Backend 'sqlite', got '%s'", cfg.Storage.Backend)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected Log.Level 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestParseVersionedConfig_LegacyDoesNotOverrideSection(t *testing.T) {
	legacyJSON := `{
		"dataDir": "/legacy/data",
		"storage": {
			"dir": "/explicit"
		}
	}`

	cfg, err := ParseVersionedConfig([]byte(legacyJSON))
	if err != nil {
		t.Fatalf("Failed to parse legacy config: %v", err)
	}

	if cfg.Storage.Dir != "/explicit" {
		t.Errorf("Expected Storage.Dir '/explicit', got '%s'", cfg.Storage.Dir)
	}
}

func TestParseVersionedConfig_Version1(t *testing.T) {
	v1JSON := `{
		"version": 1,
		"storage": {
			"backend": "redis",
			"redis": {
				"addr": "cache:6379"
			}
		}
	}`

	cfg, err := ParseVersionedConfig([]byte(v1JSON))
	if err != nil {
		t.Fatalf("Failed to parse v1 config: %v", err)
	}

	if cfg.Storage.Backend != "redis" {
		t.Errorf("Expected Backend 'redis', got '%s'", cfg.Storage.Backend)
	}

	if cfg.Storage.Redis.Addr != "cache:6379" {
		t.Errorf("Expected Redis.Addr 'cache:6379', got '%s'", cfg.Storage.Redis.Addr)
	}
}

func TestParseVersionedConfig_NestedConfig(t *testing.T) {
	nestedJSON := `{
		"version": 1,
		"config": {
			"log": {"level": "warn"}
		}
	}`

	cfg, err := ParseVersionedConfig([]byte(nestedJSON))
	if err != nil {
		t.Fatalf("Failed to parse nested config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Expected Log.Level 'warn', got '%s'", cfg.Log.Level)
	}
}

func TestParseVersionedConfig_FutureVersion(t *testing.T) {
	// Config with future version should fail
	futureJSON := `{
		"version": 999,
		"storage": {"backend": "quantum"}
	}`

	_, err := ParseVersionedConfig([]byte(futureJSON))
	if err == nil {
		t.Error("Expected error for future version, got nil")
	}
}

func TestApplyMigrations_V0ToV1(t *testing.T) {
	data := map[string]interface{}{
		"dataDir": "/old",
		"ui": map[string]interface{}{
			"toastSeconds": 4,
		},
	}

	migrated, err := ApplyMigrations(data, 0)
	if err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	version, ok := migrated["version"].(int)
	if !ok || version != 1 {
		t.Errorf("Expected version 1, got %v", migrated["version"])
	}

	if _, ok := migrated["dataDir"]; ok {
		t.Error("Expected dataDir to be removed")
	}

	storage, ok := migrated["storage"].(map[string]interface{})
	if !ok || storage["dir"] != "/old" {
		t.Errorf("Expected storage.dir '/old', got %v", migrated["storage"])
	}

	// Verify other data is preserved
	if _, ok := migrated["ui"].(map[string]interface{}); !ok {
		t.Errorf("Expected ui section preserved, got %v", migrated["ui"])
	}
}

func TestApplyMigrations_NoPath(t *testing.T) {
	_, err := ApplyMigrations(map[string]interface{}{}, -1)
	if err == nil {
		t.Error("Expected error for unknown source version, got nil")
	}
}

func TestMarshalVersionedConfig(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{
			Backend: "file",
			Dir:     "/data",
		},
	}

	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}

	if version, ok := result["version"].(float64); !ok || int(version) != CurrentVersion {
		t.Errorf("Expected version %d, got %v", CurrentVersion, result["version"])
	}

	storage, ok := result["storage"].(map[string]interface{})
	if !ok || storage["backend"] != "file" {
		t.Errorf("Expected storage.backend 'file', got %v", result["storage"])
	}
}

func TestRoundTrip(t *testing.T) {
	original := &Config{
		Storage: StorageConfig{
			Backend:    "sqlite",
			Dir:        "/data",
			SQLitePath: "/data/custom.db",
			Redis:      RedisConfig{Addr: "localhost:6379", Prefix: "p:"},
		},
		UI: UIConfig{
			ToastSeconds: 7,
			DisableMouse: true,
		},
		Log: LogConfig{
			Level: "error",
			File:  "/tmp/p.log",
		},
	}

	data, err := MarshalVersionedConfig(original)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	parsed, err := ParseVersionedConfig(data)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if *parsed != *original {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", *parsed, *original)
	}
}

func TestCurrentVersion(t *testing.T) {
	// Ensure CurrentVersion is at least 1
	if CurrentVersion < 1 {
		t.Errorf("CurrentVersion should be at least 1, got %d", CurrentVersion)
	}
}
