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

package market

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type marketMetrics struct {
	listed    prometheus.Counter
	purchases prometheus.Counter
	volume    prometheus.Counter
}

func (m *marketMetrics) init(registry prometheus.Registerer) {
	factory := promauto.With(registry)
	m.listed = factory.NewCounter(prometheus.CounterOpts{
		Name: "market_listings_total",
		Help: "total number of assets listed",
	})
	m.purchases = factory.NewCounter(prometheus.CounterOpts{
		Name: "market_purchases_total",
		Help: "total number of completed purchases",
	})
	m.volume = factory.NewCounter(prometheus.CounterOpts{
		Name: "market_volume_total",
		Help: "total value paid across completed purchases",
	})
}

func (m *marketMetrics) incListed() {
	if m.listed != nil {
		m.listed.Inc()
	}
}

func (m *marketMetrics) observePurchase(paid uint64) {
	if m.purchases == nil {
		return
	}
	m.purchases.Inc()
	m.volume.Add(float64(paid))
}
