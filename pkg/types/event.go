package types

import "time"

// Event kinds emitted by the keeper, one per observable state change.
const (
	EventPropertyCreated     = "property_created"
	EventHeartbeat           = "heartbeat"
	EventSuccessorsChanged   = "successors_changed"
	EventGuardiansChanged    = "guardians_changed"
	EventPropertyDeleted     = "property_deleted"
	EventLostAccessConfirmed = "lost_access_confirmed"
	EventPropertyWithdrawn   = "property_withdrawn"
	EventFeeCollectorChanged = "fee_collector_changed"
)

// validEventKinds is the set of recognized event kinds.
var validEventKinds = map[string]bool{
	EventPropertyCreated:     true,
	EventHeartbeat:           true,
	EventSuccessorsChanged:   true,
	EventGuardiansChanged:    true,
	EventPropertyDeleted:     true,
	EventLostAccessConfirmed: true,
	EventPropertyWithdrawn:   true,
	EventFeeCollectorChanged: true,
}

// Event records one committed state change for external indexers. The
// payload mirrors the affected field values at the moment of commit.
type Event struct {
	EventID   string         // UUID v7, generated on append.
	Kind      string         // One of the Event constants.
	Owner     string         // Property the event belongs to.
	Actor     string         // Address that triggered the change.
	Payload   map[string]any // Field values at commit time.
	CreatedAt time.Time      // Timestamp of commit.
}

// IsValidEventKind reports whether the given string is a recognized kind.
func IsValidEventKind(kind string) bool {
	return validEventKinds[kind]
}
