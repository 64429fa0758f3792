package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated delivers a freshly generated room code to its creator.
	EventRoomCreated EventKind = iota
	// EventRoleAssigned tells the caller whether it is moderator or player.
	EventRoleAssigned
	// EventPlayerListUpdate delivers full name/role records to the moderator.
	EventPlayerListUpdate
	// EventPlayerCountUpdate notifies a room of its current player count.
	EventPlayerCountUpdate
	// EventInitState delivers a room snapshot to a freshly joined connection.
	EventInitState
	// EventReceiveRole privately delivers one player their own role.
	EventReceiveRole
	// EventRoleSummary delivers the name->role cheat sheet to the moderator.
	EventRoleSummary
	// EventStatusMsg carries a human-readable status line.
	EventStatusMsg
	// EventErrorMsg notifies the caller about a rejected request.
	EventErrorMsg
	// EventRoomReset notifies a room that all roles were cleared.
	EventRoomReset
	// EventModStatusUpdate notifies a room of moderator presence changes.
	EventModStatusUpdate
	// EventKicked tells a player it was removed from the room.
	EventKicked
)

// Caller identity delivered with EventRoleAssigned.
const (
	ClientTypeModerator = "moderator"
	ClientTypePlayer    = "player"
)

// PlayerInfo is one player record as shown to the moderator. ID is the
// player's connection id, which the moderator needs to address a kick.
// Role is empty while the room is waiting.
type PlayerInfo struct {
	ID   string
	Name string
	Role string
}

// Event is sent to clients to describe what happened in the system.
// Fields are populated per kind; the wire shape lives in internal/proto.
type Event struct {
	Kind         EventKind
	RoomCode     string
	ClientType   string // EventRoleAssigned
	Role         string // EventReceiveRole
	Players      []PlayerInfo
	Count        int
	HasModerator bool
	Text         string // EventStatusMsg
	Error        *CoreError
}

func errorEvent(err *CoreError) *Event {
	return &Event{Kind: EventErrorMsg, Error: err}
}
