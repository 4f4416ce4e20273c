package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	NodeRequestsTotal   *prometheus.CounterVec
	NodeRequestDuration *prometheus.HistogramVec
	ClientRebindTotal   *prometheus.CounterVec
	PeerRecoveryTotal   prometheus.Counter
	BroadcastTotal      *prometheus.CounterVec
}

// Global Metrics Instance
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		NodeRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_node_requests_total",
			Help: "The total number of node API requests",
		}, []string{"resource", "version", "status"}),
		NodeRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_node_request_duration_seconds",
			Help:    "Duration of node API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource", "version"}),
		ClientRebindTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_client_rebind_total",
			Help: "Total number of connection rebinds",
		}, []string{"reason"}),
		PeerRecoveryTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallet_peer_recovery_total",
			Help: "Total number of peer system recovery runs",
		}),
		BroadcastTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_broadcast_total",
			Help: "Total number of broadcast transactions",
		}, []string{"version"}),
	}
}

// ObserveNodeRequest 记录一次节点请求 (Business 未初始化时静默跳过, 方便单测)
func ObserveNodeRequest(resource string, version string, err error, seconds float64) {
	if Business == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	Business.NodeRequestsTotal.WithLabelValues(resource, version, status).Inc()
	Business.NodeRequestDuration.WithLabelValues(resource, version).Observe(seconds)
}

// CountRebind 记录一次连接重绑定
func CountRebind(reason string) {
	if Business == nil {
		return
	}
	Business.ClientRebindTotal.WithLabelValues(reason).Inc()
}

// CountRecovery 记录一次节点系统恢复
func CountRecovery() {
	if Business == nil {
		return
	}
	Business.PeerRecoveryTotal.Inc()
}
