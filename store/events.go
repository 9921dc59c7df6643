package store

import "github.com/tailored-agentic-units/reduks/observability"

const (
	EventStoreCreate   observability.EventType = "store.create"
	EventDispatch      observability.EventType = "store.dispatch"
	EventCommit        observability.EventType = "store.commit"
	EventSkip          observability.EventType = "store.skip"
	EventSubscribe     observability.EventType = "store.subscribe"
	EventUnsubscribe   observability.EventType = "store.unsubscribe"
	EventNotify        observability.EventType = "store.notify"
	EventFault         observability.EventType = "store.fault"
	EventStoreShutdown observability.EventType = "store.shutdown"
)
