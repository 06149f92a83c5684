package logging

// Standardized attribute keys shared by all components.
const (
	// FieldComponent identifies the subsystem emitting a record.
	FieldComponent = "component"

	// FieldEventType categorizes a record for downstream filtering.
	FieldEventType = "event_type"

	// FieldErrorHint carries the suggested next step for a warning or error.
	FieldErrorHint = "error_hint"

	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"

	// FieldEpisodeID tags records belonging to one episode's pipeline run.
	FieldEpisodeID = "episode_id"
)
