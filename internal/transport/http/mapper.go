package http

import (
	"encoding/json"

	"github.com/vovakirdan/roleroom-server/internal/core"
	"github.com/vovakirdan/roleroom-server/internal/proto"
)

// inboundToCommand validates one wire message and maps it onto a core
// command. Malformed payloads never reach the hub: a nil command with a
// non-nil reject means the caller gets an error_msg back and the message
// is dropped; a non-nil error means the frame was not valid JSON at all.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Outbound, error) {
	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		return &core.Command{Kind: core.CommandCreateRoom}, nil, nil

	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" {
			return nil, rejectOutbound("roomId is required"), nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			RoomCode: join.RoomID,
			Name:     join.Name,
		}, nil, nil

	case proto.InboundTypeAssignRoles:
		var assign proto.AssignRolesData
		if err := json.Unmarshal(inbound.Data, &assign); err != nil {
			return nil, nil, err
		}
		if assign.RoomID == "" {
			return nil, rejectOutbound("roomId is required"), nil
		}
		return &core.Command{
			Kind:     core.CommandAssignRoles,
			RoomCode: assign.RoomID,
			Roles:    assign.SelectedRoles,
		}, nil, nil

	case proto.InboundTypeResetRoom:
		var reset proto.ResetRoomData
		if err := json.Unmarshal(inbound.Data, &reset); err != nil {
			return nil, nil, err
		}
		if reset.RoomID == "" {
			return nil, rejectOutbound("roomId is required"), nil
		}
		return &core.Command{
			Kind:     core.CommandResetRoom,
			RoomCode: reset.RoomID,
		}, nil, nil

	case proto.InboundTypeKickPlayer:
		var kick proto.KickPlayerData
		if err := json.Unmarshal(inbound.Data, &kick); err != nil {
			return nil, nil, err
		}
		if kick.RoomID == "" || kick.PlayerID == "" {
			return nil, rejectOutbound("roomId and playerId are required"), nil
		}
		return &core.Command{
			Kind:     core.CommandKickPlayer,
			RoomCode: kick.RoomID,
			TargetID: kick.PlayerID,
		}, nil, nil

	default:
		return nil, rejectOutbound("unknown message type"), nil
	}
}

func rejectOutbound(msg string) *proto.Outbound {
	return &proto.Outbound{Type: proto.OutboundTypeErrorMsg, Data: msg}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomCreated:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomCreated,
			Data: proto.RoomCreatedData{RoomCode: event.RoomCode},
		}
	case core.EventRoleAssigned:
		return proto.Outbound{
			Type: proto.OutboundTypeRoleAssigned,
			Data: proto.RoleAssignedData{Type: event.ClientType, RoomCode: event.RoomCode},
		}
	case core.EventPlayerListUpdate:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerListUpdate,
			Data: playerEntries(event.Players),
		}
	case core.EventPlayerCountUpdate:
		return proto.Outbound{
			Type: proto.OutboundTypePlayerCountUpdate,
			Data: event.Count,
		}
	case core.EventInitState:
		return proto.Outbound{
			Type: proto.OutboundTypeInitState,
			Data: proto.InitStateData{HasModerator: event.HasModerator, PlayerCount: event.Count},
		}
	case core.EventReceiveRole:
		return proto.Outbound{
			Type: proto.OutboundTypeReceiveRole,
			Data: event.Role,
		}
	case core.EventRoleSummary:
		return proto.Outbound{
			Type: proto.OutboundTypeRoleSummary,
			Data: summaryEntries(event.Players),
		}
	case core.EventStatusMsg:
		return proto.Outbound{
			Type: proto.OutboundTypeStatusMsg,
			Data: event.Text,
		}
	case core.EventErrorMsg:
		msg := "unknown error"
		if event.Error != nil {
			msg = event.Error.Message
		}
		return proto.Outbound{
			Type: proto.OutboundTypeErrorMsg,
			Data: msg,
		}
	case core.EventRoomReset:
		return proto.Outbound{Type: proto.OutboundTypeRoomReset}
	case core.EventModStatusUpdate:
		return proto.Outbound{
			Type: proto.OutboundTypeModStatusUpdate,
			Data: proto.ModStatusData{HasModerator: event.HasModerator},
		}
	case core.EventKicked:
		return proto.Outbound{Type: proto.OutboundTypeKicked}
	default:
		return proto.Outbound{Type: proto.OutboundTypeStatusMsg}
	}
}

// playerEntries converts the core records to the wire shape, mapping an
// unassigned role to JSON null.
func playerEntries(players []core.PlayerInfo) []proto.PlayerEntry {
	entries := make([]proto.PlayerEntry, 0, len(players))
	for _, p := range players {
		entry := proto.PlayerEntry{ID: p.ID, Name: p.Name}
		if p.Role != "" {
			role := p.Role
			entry.Role = &role
		}
		entries = append(entries, entry)
	}
	return entries
}

func summaryEntries(players []core.PlayerInfo) []proto.SummaryEntry {
	entries := make([]proto.SummaryEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, proto.SummaryEntry{Name: p.Name, Role: p.Role})
	}
	return entries
}
