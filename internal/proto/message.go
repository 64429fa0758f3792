package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound message names. create_room carries no payload.
const (
	InboundTypeCreateRoom  = "create_room"
	InboundTypeJoinRoom    = "join_room"
	InboundTypeAssignRoles = "start_assign_roles"
	InboundTypeResetRoom   = "reset_room"
	InboundTypeKickPlayer  = "kick_player"
)

// Outbound message names. room_reset and kicked carry no payload.
const (
	OutboundTypeRoomCreated       = "room_created"
	OutboundTypeRoleAssigned      = "role_assigned"
	OutboundTypePlayerListUpdate  = "player_list_update"
	OutboundTypePlayerCountUpdate = "player_count_update"
	OutboundTypeInitState         = "init_state"
	OutboundTypeReceiveRole       = "receive_role"
	OutboundTypeRoleSummary       = "role_summary"
	OutboundTypeStatusMsg         = "status_msg"
	OutboundTypeErrorMsg          = "error_msg"
	OutboundTypeRoomReset         = "room_reset"
	OutboundTypeModStatusUpdate   = "mod_status_update"
	OutboundTypeKicked            = "kicked"
)

// JoinRoomData requests membership in an existing room.
type JoinRoomData struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name,omitempty"`
}

// AssignRolesData asks the hub to distribute the selected roles.
type AssignRolesData struct {
	RoomID        string   `json:"roomId"`
	SelectedRoles []string `json:"selectedRoles"`
}

// ResetRoomData asks the hub to clear all assigned roles.
type ResetRoomData struct {
	RoomID string `json:"roomId"`
}

// KickPlayerData asks the hub to remove one player.
type KickPlayerData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// RoomCreatedData delivers the generated code to the room's creator.
type RoomCreatedData struct {
	RoomCode string `json:"roomCode"`
}

// RoleAssignedData tells a connection whether it acts as moderator or
// player. RoomCode is set on the player path.
type RoleAssignedData struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode,omitempty"`
}

// PlayerEntry is one full player record for the moderator's list. Role is
// null until distribution; the id lets the moderator address a kick.
type PlayerEntry struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Role *string `json:"role"`
}

// SummaryEntry is one name/role pair of the moderator's cheat sheet.
type SummaryEntry struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// InitStateData is the room snapshot for a freshly joined connection.
type InitStateData struct {
	HasModerator bool `json:"hasModerator"`
	PlayerCount  int  `json:"playerCount"`
}

// ModStatusData notifies a room of moderator presence changes.
type ModStatusData struct {
	HasModerator bool `json:"hasModerator"`
}
