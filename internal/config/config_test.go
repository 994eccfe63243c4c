// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		BindAddr:        "0.0.0.0",
		DatabasePath:    ".magpie",
		ApiPort:         3000,
		MetricsPort:     12798,
		BlobPlugin:      DefaultBlobPlugin,
		MetadataPlugin:  DefaultMetadataPlugin,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
bindAddr: "127.0.0.1"
databasePath: ".magpie-test"
apiPort: 8000
metricsPort: 8088
blobPlugin: "badger"
metadataPlugin: "sqlite"
shutdownTimeout: "10s"
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-magpie.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	defer os.Remove(tmpFile)

	expected := &Config{
		BindAddr:        "127.0.0.1",
		DatabasePath:    ".magpie-test",
		ApiPort:         8000,
		MetricsPort:     8088,
		BlobPlugin:      "badger",
		MetadataPlugin:  "sqlite",
		ShutdownTimeout: "10s",
	}

	actual, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf(
			"Loaded config does not match expected.\nActual: %+v\nExpected: %+v",
			actual,
			expected,
		)
	}
}

func TestLoad_WithoutConfigFile_UsesDefaults(t *testing.T) {
	resetGlobalConfig()

	// Without Config file
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Expected is the original default values from globalConfig
	expected := &Config{
		BindAddr:        "0.0.0.0",
		DatabasePath:    ".magpie",
		ApiPort:         3000,
		MetricsPort:     12798,
		BlobPlugin:      DefaultBlobPlugin,
		MetadataPlugin:  DefaultMetadataPlugin,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf(
			"Loaded config does not match expected.\nActual: %+v\nExpected: %+v",
			cfg,
			expected,
		)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	resetGlobalConfig()
	t.Setenv("MAGPIE_DATABASE_PATH", "/var/lib/magpie")
	t.Setenv("MAGPIE_DATABASE_BLOB_PLUGIN", "badger")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.DatabasePath != "/var/lib/magpie" {
		t.Errorf(
			"unexpected database path: %q",
			cfg.DatabasePath,
		)
	}
	if cfg.BlobPlugin != "badger" {
		t.Errorf("unexpected blob plugin: %q", cfg.BlobPlugin)
	}
}

func TestContextRoundTrip(t *testing.T) {
	resetGlobalConfig()
	cfg := GetConfig()
	ctx := WithContext(t.Context(), cfg)
	if got := FromContext(ctx); got != cfg {
		t.Errorf("unexpected config from context: %+v", got)
	}
	if got := FromContext(t.Context()); got != nil {
		t.Errorf("expected nil config, got: %+v", got)
	}
}
