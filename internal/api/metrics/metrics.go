// Package metrics defines and registers all custom Prometheus metrics for
// the board API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics register themselves with the default registry at package load
// via promauto; importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bacheca"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRefreshesTotal counts session expiry extensions requested over HTTP.
// Label:
//   - trigger: "explicit" (refresh endpoint) or "activity" (activity ping)
var SessionRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of session refresh requests, by trigger.",
	},
	[]string{"trigger"},
)

// ListingsCreatedTotal counts new postings.
// Label:
//   - type: "job" or "service"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created, by type.",
	},
	[]string{"type"},
)

// FavoritesToggledTotal counts bookmark mutations.
// Label:
//   - action: "added" or "removed"
var FavoritesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_toggled_total",
		Help:      "Total number of favorite toggles, by resulting action.",
	},
	[]string{"action"},
)

// NewsletterEmailsTotal counts per-recipient newsletter outcomes.
// Label:
//   - result: "sent" or "failed"
var NewsletterEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_emails_total",
		Help:      "Total number of newsletter emails, by delivery result.",
	},
	[]string{"result"},
)

// UploadsTotal counts image upload attempts.
// Label:
//   - result: "stored", "rejected" or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image uploads, by result.",
	},
	[]string{"result"},
)
