// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mergeLines = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lithoform_cart_merge_lines_total",
		Help: "Guest cart lines submitted during reconciliation by outcome",
	}, []string{"outcome"})

	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lithoform_cart_refresh_failures_total",
		Help: "Remote cart fetches that failed and left the cart unavailable",
	})
)
