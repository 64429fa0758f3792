package core

// Recipient selects who receives an event: exactly one of Conn (a single
// connection id) or Room (every member of a room's broadcast group) is set.
type Recipient struct {
	Conn string
	Room string
}

// ToConn addresses a single connection.
func ToConn(id string) Recipient { return Recipient{Conn: id} }

// ToRoom addresses a room's broadcast group.
func ToRoom(code string) Recipient { return Recipient{Room: code} }

// Effect pairs an event with its recipient. State transitions mutate and
// return effects; the hub executes them once the mutation is complete, so
// transitions stay testable without a live transport.
type Effect struct {
	To    Recipient
	Event *Event
}
