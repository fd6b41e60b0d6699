package services

import "github.com/prometheus/client_golang/prometheus"

var (
	contactsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_submitted_total",
			Help: "Contact form submissions persisted, by requested service.",
		},
		[]string{"service"},
	)

	contactsReplayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contacts_submission_replays_total",
			Help: "Submissions answered from an earlier Idempotency-Key instead of creating a contact.",
		},
	)

	contactsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contacts_submission_rejected_total",
			Help: "Submissions rejected by validation.",
		},
	)
)

func init() {
	prometheus.MustRegister(contactsSubmitted, contactsReplayed, contactsRejected)
}
