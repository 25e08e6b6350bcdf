// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Identity metrics
	IncUserRegistered()
	IncAuthAttempt(status string) // status: "success" or "failure"

	// Catalog metrics
	IncTagCreated()
	IncIngredientCreated()
	IncRecipeCreated()
	IncRecipeUpdated()
	IncRecipeDeleted()
	IncImageUploaded(status string) // status: "success" or "rejected"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
