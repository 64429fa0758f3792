package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom opens a fresh room with the caller as moderator.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom adds the caller to an existing room's player list.
	CommandJoinRoom
	// CommandAssignRoles shuffles the selected roles onto the players.
	CommandAssignRoles
	// CommandResetRoom clears all assigned roles.
	CommandResetRoom
	// CommandKickPlayer removes one player from the room.
	CommandKickPlayer
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	RoomCode string
	Name     string   // display name on join
	Roles    []string // selected roles on assign
	TargetID string   // connection id of the player to kick
}
