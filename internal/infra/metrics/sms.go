// File: internal/infra/metrics/sms.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	smsSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sms_sends_total",
			Help: "Send attempts by result (success/failure).",
		},
		[]string{"result"},
	)

	smsSendLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sms_send_latency_ms",
			Help:    "Provider send call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"result"},
	)

	ledgerRecipients = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ledger_recipients",
			Help: "Recipients tracked by the ledger, by sent state.",
		},
		[]string{"state"},
	)
)

func init() {
	register(smsSendsTotal, smsSendLatencyMs, ledgerRecipients)
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// ObserveSend records one send attempt and its latency.
func ObserveSend(ok bool, latency time.Duration) {
	label := resultLabel(ok)
	smsSendsTotal.WithLabelValues(label).Inc()
	smsSendLatencyMs.WithLabelValues(label).Observe(float64(latency.Milliseconds()))
}

// SetLedgerCounts refreshes the sent/unsent gauges from ledger totals.
func SetLedgerCounts(total, unsent int) {
	ledgerRecipients.WithLabelValues("unsent").Set(float64(unsent))
	ledgerRecipients.WithLabelValues("sent").Set(float64(total - unsent))
}
