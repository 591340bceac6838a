// Package metrics exposes Prometheus counters for HTTP traffic and job board events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services and middleware depend on.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordJobCreated()
	RecordJobReviewed(status string)
	RecordApplication()
	RecordApplicationDecision(status string)
	RecordEmail(success bool)
	RecordNotification(kind string)
}

type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	jobsCreated   prometheus.Counter
	jobsReviewed  *prometheus.CounterVec
	applications  prometheus.Counter
	decisions     *prometheus.CounterVec
	emails        *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_jobs_created_total",
			Help: "Jobs submitted for moderation",
		}),
		jobsReviewed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_jobs_reviewed_total",
			Help: "Moderation decisions by outcome",
		}, []string{"status"}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_applications_total",
			Help: "Applications submitted",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_application_decisions_total",
			Help: "Employer decisions on applications by status",
		}, []string{"status"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_emails_total",
			Help: "Outbound emails by result",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_notifications_total",
			Help: "In-app notifications created by type",
		}, []string{"type"}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.jobsCreated,
		c.jobsReviewed,
		c.applications,
		c.decisions,
		c.emails,
		c.notifications,
	)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordJobCreated() { c.jobsCreated.Inc() }

func (c *Collector) RecordJobReviewed(status string) { c.jobsReviewed.WithLabelValues(status).Inc() }

func (c *Collector) RecordApplication() { c.applications.Inc() }

func (c *Collector) RecordApplicationDecision(status string) {
	c.decisions.WithLabelValues(status).Inc()
}

func (c *Collector) RecordEmail(success bool) {
	result := "sent"
	if !success {
		result = "failed"
	}
	c.emails.WithLabelValues(result).Inc()
}

func (c *Collector) RecordNotification(kind string) { c.notifications.WithLabelValues(kind).Inc() }

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything; used where no registry is configured.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordJobCreated()                                {}
func (Nop) RecordJobReviewed(string)                         {}
func (Nop) RecordApplication()                               {}
func (Nop) RecordApplicationDecision(string)                 {}
func (Nop) RecordEmail(bool)                                 {}
func (Nop) RecordNotification(string)                        {}
