package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "kalshibot_orders_total", Help: "Order placements by action, side and result"},
		[]string{"action", "side", "result"},
	)
	FillsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "kalshibot_fills_total", Help: "Fills received on the websocket feed"},
		[]string{"action", "side"},
	)
)

func init() {
	prometheus.MustRegister(OrdersTotal, FillsTotal)
}

func ServeMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

// PushOrderMetrics sends the order counters to a Pushgateway. The quick trade
// exits before any scrape could see them.
func PushOrderMetrics(gatewayURL string) error {
	return push.New(gatewayURL, MetricsJob).Collector(OrdersTotal).Push()
}
