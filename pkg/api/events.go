package api

// StreamEventType identifies the type of a frame on the outbound event
// stream.
type StreamEventType string

const (
	// EventMessage carries one JSON-encoded envelope as its data.
	EventMessage StreamEventType = "message"

	// EventDone is the end-of-stream marker, emitted exactly once per
	// request after the result frame.
	EventDone StreamEventType = "done"
)

// DoneData is the sentinel data written with the end-of-stream marker.
const DoneData = "[DONE]"
