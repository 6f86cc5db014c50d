package observability

import (
	"strings"
	"testing"
	"time"
)

func testMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("bw_api_requests_total", "requests", []string{"method", "route", "status"}),
		apiLatency:  NewHistogramVec("bw_api_request_duration_seconds", "latency", []string{"method", "route", "status"}, nil),
		apiInflight: NewGauge("bw_api_inflight_requests", "inflight"),
		apiReqTotal: NewCounter("bw_api_requests_total_all", "all"),
		apiReqError: NewCounter("bw_api_requests_error_total", "errors"),

		civicFetch:   NewCounterVec("bw_civic_fetch_total", "fetches", []string{"source", "status"}),
		civicLatency: NewHistogramVec("bw_civic_fetch_duration_seconds", "fetch latency", []string{"source"}, nil),

		campaignCalls:    NewCounterVec("bw_campaign_api_calls_total", "calls", []string{"tier"}),
		campaignRejected: NewCounterVec("bw_campaign_quota_rejected_total", "rejections", []string{"tier"}),

		interactions: NewCounterVec("bw_interactions_total", "interactions", []string{"action_type"}),
	}
}

func TestObserveAPICountsServerErrors(t *testing.T) {
	t.Parallel()
	m := testMetrics()

	m.ObserveAPI("GET", "/api/elections", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/elections", "500", 5*time.Millisecond)

	if got := m.apiReqTotal.Value(); got != 2 {
		t.Fatalf("unexpected request total: got=%f want=2", got)
	}
	if got := m.apiReqError.Value(); got != 1 {
		t.Fatalf("unexpected error total: got=%f want=1", got)
	}
}

func TestWritePrometheusRendersLabeledSeries(t *testing.T) {
	t.Parallel()
	m := testMetrics()

	m.ObserveCivicFetch("openfec", "ok", 120*time.Millisecond)
	m.ObserveCivicFetch("openfec", "error", 80*time.Millisecond)
	m.IncQuotaRejected("basic")

	var b strings.Builder
	if err := m.WritePrometheus(&b); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		`bw_civic_fetch_total{source="openfec",status="ok"} 1`,
		`bw_civic_fetch_total{source="openfec",status="error"} 1`,
		`bw_civic_fetch_duration_seconds_count{source="openfec"} 2`,
		`bw_campaign_quota_rejected_total{tier="basic"} 1`,
		"# TYPE bw_civic_fetch_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing series %q in output:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()
	var m *Metrics

	m.ObserveAPI("GET", "/api/elections", "200", time.Millisecond)
	m.ObserveCivicFetch("votesmart", "ok", time.Millisecond)
	m.IncCampaignCall("premium")
	m.IncQuotaRejected("premium")
	m.IncInteraction("view_candidate")
	m.ApiInflightInc()
	m.ApiInflightDec()

	if err := m.WritePrometheus(&strings.Builder{}); err != nil {
		t.Fatalf("nil write failed: %v", err)
	}
}
