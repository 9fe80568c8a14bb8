// Package metrics collects and exposes Prometheus metrics for the
// invitation and onboarding workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the service layer sees. Keeping it an interface lets
// tests pass a collector backed by a throwaway registry.
type Recorder interface {
	RecordInviteCreated()
	RecordInviteAccepted()
	RecordInviteRevoked()
	RecordOTPIssued()
	RecordOTPFailed()
	RecordMailSent()
	RecordMailFailed()
}

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	invitesCreated  prometheus.Counter
	invitesAccepted prometheus.Counter
	invitesRevoked  prometheus.Counter
	otpIssued       prometheus.Counter
	otpFailed       prometheus.Counter
	mailSent        prometheus.Counter
	mailFailed      prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		invitesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_invites_created_total",
			Help: "Total staff invites created.",
		}),
		invitesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_invites_accepted_total",
			Help: "Total staff invites accepted.",
		}),
		invitesRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_invites_revoked_total",
			Help: "Total staff invites revoked by an owner.",
		}),
		otpIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_otp_issued_total",
			Help: "Total one-time codes issued.",
		}),
		otpFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_otp_failed_total",
			Help: "Total one-time code verifications that failed.",
		}),
		mailSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_mail_sent_total",
			Help: "Total invite mails handed to the provider.",
		}),
		mailFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinicd_mail_failed_total",
			Help: "Total invite mails the provider rejected.",
		}),
	}

	reg.MustRegister(
		c.invitesCreated,
		c.invitesAccepted,
		c.invitesRevoked,
		c.otpIssued,
		c.otpFailed,
		c.mailSent,
		c.mailFailed,
	)

	return c
}

func (c *Collector) RecordInviteCreated()  { c.invitesCreated.Inc() }
func (c *Collector) RecordInviteAccepted() { c.invitesAccepted.Inc() }
func (c *Collector) RecordInviteRevoked()  { c.invitesRevoked.Inc() }
func (c *Collector) RecordOTPIssued()      { c.otpIssued.Inc() }
func (c *Collector) RecordOTPFailed()      { c.otpFailed.Inc() }
func (c *Collector) RecordMailSent()       { c.mailSent.Inc() }
func (c *Collector) RecordMailFailed()     { c.mailFailed.Inc() }

// Handler returns the scrape endpoint for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards everything. Used where metrics are not
// wired, e.g. unit tests that do not assert on them.
type Noop struct{}

func (Noop) RecordInviteCreated()  {}
func (Noop) RecordInviteAccepted() {}
func (Noop) RecordInviteRevoked()  {}
func (Noop) RecordOTPIssued()      {}
func (Noop) RecordOTPFailed()      {}
func (Noop) RecordMailSent()       {}
func (Noop) RecordMailFailed()     {}
