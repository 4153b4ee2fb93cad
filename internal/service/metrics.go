package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// inquiriesSubmitted is labelled by service; values outside the contact form
// list are reported as "unlisted".
var inquiriesSubmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "inquiries_submitted_total",
		Help: "Contact inquiries stored",
	},
	[]string{"service"},
)
