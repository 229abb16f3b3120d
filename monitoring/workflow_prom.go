// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ApplicationsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reviewboard_applications_created_total",
	Help: "The total number of submitted applications",
})

var StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reviewboard_status_transitions_total",
	Help: "The total number of applied status transitions",
}, []string{"from", "to"})

var StatusTransitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reviewboard_status_transitions_rejected_total",
	Help: "The total number of refused status transitions by reason",
}, []string{"reason"})

var ReviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reviewboard_reviews_submitted_total",
	Help: "The total number of submitted reviews",
})

var ActiveFeedSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "reviewboard_feed_subscriptions_active",
	Help: "The number of currently open dashboard feed subscriptions",
})

var FeedSnapshotsDelivered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reviewboard_feed_snapshots_delivered_total",
	Help: "The total number of snapshots delivered to feed subscribers",
})

var RoleChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reviewboard_role_changes_total",
	Help: "The total number of role reassignments by new role",
}, []string{"role"})

var FileUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reviewboard_file_upload_bytes_total",
	Help: "The total number of uploaded attachment bytes",
})

var StoreQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "reviewboard_store_query_duration_seconds",
	Help:    "Duration of live query refreshes in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"collection"})
