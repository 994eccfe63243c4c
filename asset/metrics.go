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

package asset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type managerMetrics struct {
	minted  prometheus.Counter
	updated prometheus.Counter
}

func (m *managerMetrics) init(registry prometheus.Registerer) {
	factory := promauto.With(registry)
	m.minted = factory.NewCounter(prometheus.CounterOpts{
		Name: "asset_minted_total",
		Help: "total number of assets minted",
	})
	m.updated = factory.NewCounter(prometheus.CounterOpts{
		Name: "asset_updates_total",
		Help: "total number of asset metadata updates",
	})
}

func (m *managerMetrics) incMinted() {
	if m.minted != nil {
		m.minted.Inc()
	}
}

func (m *managerMetrics) incUpdated() {
	if m.updated != nil {
		m.updated.Inc()
	}
}
