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

package magpie

import (
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	// Default logger discards output but must not be nil
	require.NotNil(t, cfg.logger)
	assert.Empty(t, cfg.dataDir)
	assert.Empty(t, cfg.apiListenAddress)
	assert.Equal(t, time.Duration(0), cfg.shutdownTimeout)
}

func TestNewConfigOptions(t *testing.T) {
	logger := slog.Default()
	registry := prometheus.NewRegistry()
	cfg := NewConfig(
		WithLogger(logger),
		WithPrometheusRegistry(registry),
		WithDatabasePath("/tmp/magpie"),
		WithBlobPlugin("badger"),
		WithMetadataPlugin("sqlite"),
		WithApiListenAddress(":3000"),
		WithShutdownTimeout(5*time.Second),
	)

	assert.Equal(t, logger, cfg.logger)
	assert.Equal(t, prometheus.Registerer(registry), cfg.promRegistry)
	assert.Equal(t, "/tmp/magpie", cfg.dataDir)
	assert.Equal(t, "badger", cfg.blobPlugin)
	assert.Equal(t, "sqlite", cfg.metadataPlugin)
	assert.Equal(t, ":3000", cfg.apiListenAddress)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
}
