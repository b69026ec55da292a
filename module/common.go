package module

// ReadyDoneAware provides an easy interface to wait for server startup and shutdown.
// Implementations only support a single start-stop cycle.
type ReadyDoneAware interface {
	// Ready commences startup and returns a channel that is closed once
	// startup has completed. This is an idempotent method.
	Ready() <-chan struct{}

	// Done commences shutdown and returns a channel that is closed once
	// shutdown has completed. This is an idempotent method.
	Done() <-chan struct{}
}
