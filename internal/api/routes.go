package api

const (
	Health            = "/health"
	Metrics           = "/metrics"
	Applications      = "/applications"
	ApplicationStatus = "/applications/{id}/status"
	PropertyLeases    = "/properties/{id}/leases"
)
