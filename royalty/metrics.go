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

package royalty

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type engineMetrics struct {
	distributions     prometheus.Counter
	distributedAmount prometheus.Counter
}

func (m *engineMetrics) init(registry prometheus.Registerer) {
	factory := promauto.With(registry)
	m.distributions = factory.NewCounter(prometheus.CounterOpts{
		Name: "royalty_distributions_total",
		Help: "total number of payments distributed",
	})
	m.distributedAmount = factory.NewCounter(prometheus.CounterOpts{
		Name: "royalty_distributed_amount_total",
		Help: "total amount of value distributed",
	})
}

func (m *engineMetrics) observe(total uint64) {
	if m.distributions == nil {
		return
	}
	m.distributions.Inc()
	m.distributedAmount.Add(float64(total))
}
