package adapter

// Adapter represents a runtime adapter for the application
type Adapter interface {
	// Start begins the adapter's runtime execution, returning when it stops
	Start() error
}
