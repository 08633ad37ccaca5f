package logging

const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldFrame is a frame index on the visual timeline.
	FieldFrame = "frame"
	// FieldOutput is an export destination path.
	FieldOutput = "output"
	// FieldJobID identifies a render job in the history store.
	FieldJobID = "job_id"
)
