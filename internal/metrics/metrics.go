// Package metrics exports Prometheus counters for notification sends and
// contact lookups.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greenapi_notifications_total",
			Help: "Total notification send attempts",
		},
		[]string{"kind", "status"},
	)
	contactLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greenapi_contact_loads_total",
			Help: "Total contact list lookups",
		},
		[]string{"status"},
	)
	devicesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greenapi_devices_created_total",
			Help: "Total notifier devices created",
		},
	)
)

func init() {
	prometheus.MustRegister(notifications, contactLoads, devicesCreated)
}

func status(ok bool) string {
	if ok {
		return StatusSuccess
	}
	return StatusFailure
}

// IncNotification counts one send attempt of the given kind.
func IncNotification(kind string, ok bool) {
	notifications.WithLabelValues(kind, status(ok)).Inc()
}

// IncContactLoad counts one contact lookup.
func IncContactLoad(ok bool) {
	contactLoads.WithLabelValues(status(ok)).Inc()
}

// IncDeviceCreated counts one created device.
func IncDeviceCreated() {
	devicesCreated.Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
