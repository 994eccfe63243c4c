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

package badger

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWithDataDir(t *testing.T) {
	b := &BlobStoreBadger{}
	WithDataDir("/tmp/test")(b)
	if b.dataDir != "/tmp/test" {
		t.Errorf("Expected dataDir to be '/tmp/test', got '%s'", b.dataDir)
	}
}

func TestWithBlockCacheSize(t *testing.T) {
	b := &BlobStoreBadger{}
	WithBlockCacheSize(123456789)(b)
	if b.blockCacheSize != 123456789 {
		t.Errorf(
			"Expected blockCacheSize to be 123456789, got %d",
			b.blockCacheSize,
		)
	}
}

func TestWithIndexCacheSize(t *testing.T) {
	b := &BlobStoreBadger{}
	WithIndexCacheSize(987654321)(b)
	if b.indexCacheSize != 987654321 {
		t.Errorf(
			"Expected indexCacheSize to be 987654321, got %d",
			b.indexCacheSize,
		)
	}
}

func TestWithGc(t *testing.T) {
	b := &BlobStoreBadger{}
	WithGc(true)(b)
	if !b.gcEnabled {
		t.Error("Expected gcEnabled to be true")
	}
	WithGc(false)(b)
	if b.gcEnabled {
		t.Error("Expected gcEnabled to be false")
	}
}

func TestWithLogger(t *testing.T) {
	b := &BlobStoreBadger{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	WithLogger(logger)(b)
	if b.logger != logger {
		t.Error("Expected logger to be set")
	}
}

func TestWithPromRegistry(t *testing.T) {
	b := &BlobStoreBadger{}
	registry := prometheus.NewRegistry()
	WithPromRegistry(registry)(b)
	if b.promRegistry != registry {
		t.Error("Expected promRegistry to be set")
	}
}

func TestNewAppliesTuningDefaults(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer b.Close()
	if b.blockCacheSize != DefaultBlockCacheSize {
		t.Errorf(
			"Expected blockCacheSize %d, got %d",
			DefaultBlockCacheSize,
			b.blockCacheSize,
		)
	}
	if b.indexCacheSize != DefaultIndexCacheSize {
		t.Errorf(
			"Expected indexCacheSize %d, got %d",
			DefaultIndexCacheSize,
			b.indexCacheSize,
		)
	}
	if b.valueLogFileSize != DefaultValueLogFileSize {
		t.Errorf(
			"Expected valueLogFileSize %d, got %d",
			DefaultValueLogFileSize,
			b.valueLogFileSize,
		)
	}
	if b.memTableSize != DefaultMemTableSize {
		t.Errorf(
			"Expected memTableSize %d, got %d",
			DefaultMemTableSize,
			b.memTableSize,
		)
	}
	if b.valueThreshold != DefaultValueThreshold {
		t.Errorf(
			"Expected valueThreshold %d, got %d",
			DefaultValueThreshold,
			b.valueThreshold,
		)
	}
}

func TestInMemoryStoreDisablesGc(t *testing.T) {
	b, err := New(WithGc(true))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer b.Close()
	if b.gcTicker != nil {
		t.Error("Expected no GC ticker for in-memory store")
	}
}
