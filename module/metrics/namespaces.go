package metrics

// Prometheus metric namespaces
const (
	namespaceStudyDAO = "studydao"
)

// Prometheus metric subsystems
const (
	subsystemKernel       = "kernel"
	subsystemSubmission   = "submission"
	subsystemVerification = "verification"
	subsystemRestAPI      = "rest_api"
)
