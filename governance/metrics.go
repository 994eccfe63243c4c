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

package governance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type engineMetrics struct {
	created  prometheus.Counter
	executed prometheus.Counter
}

func (m *engineMetrics) init(registry prometheus.Registerer) {
	factory := promauto.With(registry)
	m.created = factory.NewCounter(prometheus.CounterOpts{
		Name: "governance_proposals_created_total",
		Help: "total number of proposals created",
	})
	m.executed = factory.NewCounter(prometheus.CounterOpts{
		Name: "governance_proposals_executed_total",
		Help: "total number of proposals executed",
	})
}

func (m *engineMetrics) incCreated() {
	if m.created != nil {
		m.created.Inc()
	}
}

func (m *engineMetrics) incExecuted() {
	if m.executed != nil {
		m.executed.Inc()
	}
}
