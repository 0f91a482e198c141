package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	adminLoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_logins_total",
		Help: "Total number of admin login attempts by result.",
	}, []string{"status"})
	adminLogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_logouts_total",
		Help: "Total number of admin logouts.",
	})
	unauthorizedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_unauthorized_requests_total",
		Help: "Total number of requests rejected by the admin session check.",
	}, []string{"surface"})
)
