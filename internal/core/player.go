package core

// Player is a joined participant as seen by the core layer. ID is the
// connection identifier minted by the transport when the socket was
// accepted; it never outlives the connection.
type Player struct {
	ID   string
	Name string
	Role string
}

// placeholderName derives a display name for players that joined
// without one.
func placeholderName(id string) string {
	short := id
	if len(short) > 4 {
		short = short[:4]
	}
	return "Player_" + short
}
