package linkcheck

// EventType indicates the type of a crawl progress event.
type EventType int

// Progress event types.
const (
	// EventDiscovered fires when an unseen URL is added to the frontier.
	EventDiscovered EventType = iota

	// EventFetched fires when a resource has been validated; Outcome is
	// populated.
	EventFetched

	// EventCompleted fires once, when the frontier has drained and no
	// task is in flight.
	EventCompleted

	// EventCancelled fires once, when the crawl observes cancellation.
	EventCancelled
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventDiscovered:
		return "discovered"
	case EventFetched:
		return "fetched"
	case EventCompleted:
		return "completed"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event reports crawl progress to subscribers.
type Event struct {
	Type EventType

	// Task is populated for Discovered events.
	Task Task

	// Outcome is populated for Fetched events.
	Outcome *Outcome

	// Fetched is the number of resources validated so far.
	Fetched int

	// Queued is the number of tasks waiting in the frontier.
	Queued int
}

// EventFunc receives progress events. It is called synchronously from the
// scheduler goroutine; implementations that may block should subscribe to
// a buffered event channel instead.
type EventFunc func(Event)
