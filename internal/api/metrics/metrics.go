// Package metrics defines and registers the custom Prometheus metrics of the
// devport API. Metrics are registered with the default registry on import
// through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devport"

// ── Inquiry metrics ───────────────────────────────────────────────────────────

// InquiriesCreatedTotal counts service inquiries created.
// Label:
//   - service_id: the requested service (e.g. "laravel-service")
var InquiriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_created_total",
		Help:      "Total number of service inquiries created, by service.",
	},
	[]string{"service_id"},
)

// InquiryMessagesTotal counts conversation messages posted.
// Label:
//   - sender_role: "ADMIN" or "USER"
var InquiryMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiry_messages_total",
		Help:      "Total number of inquiry conversation messages posted.",
	},
	[]string{"sender_role"},
)

// SubmissionDedupTotal counts idempotency checks on public submissions.
// Labels:
//   - scope: "inquiry" or "contact"
//   - result: "hit" (duplicate, rejected) or "miss"
var SubmissionDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_dedup_total",
		Help:      "Total number of submission idempotency checks, by scope and result.",
	},
	[]string{"scope", "result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks pending records in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of inquiry activity records pending per worker.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long one activity record takes.
// Label:
//   - kind: created, message, status_changed, deleted
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of inquiry activity processing.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts activity records whose fan-out failed.
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of inquiry activity records that failed processing.",
	},
	[]string{"kind"},
)

// ── Inbox & localization ──────────────────────────────────────────────────────

// InboxNotificationsTotal counts new-arrival alerts raised by the inbox watcher.
var InboxNotificationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inbox_notifications_total",
		Help:      "Total number of new contact message notifications.",
	},
)

// LocationsServedTotal counts resolved visitor locations.
// Label:
//   - currency: ISO code served to the visitor
var LocationsServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locations_served_total",
		Help:      "Total number of visitor locations resolved, by currency.",
	},
	[]string{"currency"},
)

// AdviceRequestsTotal counts career advice requests.
// Label:
//   - result: "generated" or "fallback"
var AdviceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advice_requests_total",
		Help:      "Total number of career advice requests, by result.",
	},
	[]string{"result"},
)
