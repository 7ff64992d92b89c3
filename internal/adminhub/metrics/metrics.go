// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for invite validation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultExpired  = "expired"
	ResultUsed     = "used"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Metrics captures adminhub health signals. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	inviteValidations *prometheus.CounterVec
	archiveRuns       *prometheus.CounterVec
	archivedRecords   prometheus.Counter
	emailsSent        *prometheus.CounterVec
}

// New registers the adminhub collectors, plus the Go and process
// collectors, on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inviteValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminhub_invite_validations_total",
			Help: "Invite code validations by result.",
		}, []string{"result"}),
		archiveRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminhub_archive_runs_total",
			Help: "Archiving passes by trigger and result.",
		}, []string{"trigger", "result"}),
		archivedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adminhub_archived_records_total",
			Help: "Invites moved to the archive.",
		}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adminhub_emails_sent_total",
			Help: "Notification emails by template and result.",
		}, []string{"template", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.inviteValidations,
		m.archiveRuns,
		m.archivedRecords,
		m.emailsSent,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) InviteValidated(result string) {
	if m == nil {
		return
	}
	m.inviteValidations.WithLabelValues(result).Inc()
}

func (m *Metrics) ArchiveRun(trigger string, archived int, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.archiveRuns.WithLabelValues(trigger, result).Inc()
	if archived > 0 {
		m.archivedRecords.Add(float64(archived))
	}
}

func (m *Metrics) EmailSent(template string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.emailsSent.WithLabelValues(template, result).Inc()
}
