package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobnexus_notifications_created_total",
		Help: "Notification create attempts by result",
	}, []string{"result"})

	GateDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobnexus_meeting_gate_decisions_total",
		Help: "Meeting access decisions by outcome",
	}, []string{"outcome"})

	OpenRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jobnexus_meeting_open_rooms",
		Help: "Meeting rooms currently tracked",
	})

	PushConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jobnexus_notification_ws_connections",
		Help: "Open notification websocket connections",
	})

	once sync.Once
)

func Init() {
	once.Do(func() {
		prometheus.MustRegister(NotificationsCreated, GateDecisions, OpenRooms, PushConnections)
	})
}

// Handler returns an http.Handler for Prometheus scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
