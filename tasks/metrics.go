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

package tasks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type workflowMetrics struct {
	published prometheus.Counter
	completed prometheus.Counter
	disputed  prometheus.Counter
}

func (m *workflowMetrics) init(registry prometheus.Registerer) {
	factory := promauto.With(registry)
	m.published = factory.NewCounter(prometheus.CounterOpts{
		Name: "tasks_published_total",
		Help: "total number of tasks published",
	})
	m.completed = factory.NewCounter(prometheus.CounterOpts{
		Name: "tasks_completed_total",
		Help: "total number of tasks completed",
	})
	m.disputed = factory.NewCounter(prometheus.CounterOpts{
		Name: "tasks_disputed_total",
		Help: "total number of tasks disputed",
	})
}

func (m *workflowMetrics) incPublished() {
	if m.published != nil {
		m.published.Inc()
	}
}

func (m *workflowMetrics) incCompleted() {
	if m.completed != nil {
		m.completed.Inc()
	}
}

func (m *workflowMetrics) incDisputed() {
	if m.disputed != nil {
		m.disputed.Inc()
	}
}
