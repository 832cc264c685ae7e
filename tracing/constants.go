package tracing

// Constants for standard span tag and baggage key names
const (
	RequestIDKey = "requestId"
	ComponentKey = "component"
	HelloToKey   = "hello-to"
	EventKey     = "event"
)
