package core

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Status is the room lifecycle state.
type Status int

const (
	// StatusWaiting means no roles are assigned; join/leave and
	// moderator configuration are allowed.
	StatusWaiting Status = iota
	// StatusAssigned means roles are set. Join/leave is still allowed;
	// new joiners arrive without a role until the next reset.
	StatusAssigned
)

func (s Status) String() string {
	if s == StatusAssigned {
		return "assigned"
	}
	return "waiting"
}

// Room is one game session: a moderator, an ordered player list and the
// broadcast group of subscribed connections. All mutation happens through
// the transition methods below, which return the effects to emit.
type Room struct {
	Code        string
	ModeratorID string
	Players     []*Player
	Status      Status

	members map[string]struct{} // broadcast group, connection ids
}

func newRoom(code string) *Room {
	return &Room{
		Code:    code,
		Status:  StatusWaiting,
		members: make(map[string]struct{}),
	}
}

// Empty reports whether the room should be garbage-collected: no players
// and no active moderator.
func (r *Room) Empty() bool {
	return len(r.Players) == 0 && r.ModeratorID == ""
}

// HasMember reports whether a connection is in the broadcast group.
func (r *Room) HasMember(connID string) bool {
	_, ok := r.members[connID]
	return ok
}

func (r *Room) playerIndex(connID string) int {
	for i, p := range r.Players {
		if p.ID == connID {
			return i
		}
	}
	return -1
}

// playerList snapshots the name/role records in join order.
func (r *Room) playerList() []PlayerInfo {
	list := make([]PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		list = append(list, PlayerInfo{ID: p.ID, Name: p.Name, Role: p.Role})
	}
	return list
}

// Claim installs the creating connection as moderator and subscribes it to
// the broadcast group.
func (r *Room) Claim(connID string) []Effect {
	r.ModeratorID = connID
	r.members[connID] = struct{}{}
	return []Effect{
		{To: ToConn(connID), Event: &Event{Kind: EventRoomCreated, RoomCode: r.Code}},
		{To: ToConn(connID), Event: &Event{Kind: EventRoleAssigned, ClientType: ClientTypeModerator}},
		{To: ToConn(connID), Event: &Event{Kind: EventPlayerListUpdate, Players: r.playerList()}},
		{To: ToConn(connID), Event: &Event{Kind: EventInitState, HasModerator: true, Count: len(r.Players)}},
	}
}

// Join adds the connection to the player list if it is not already there
// and subscribes it to the broadcast group. Joining twice with the same
// connection id is a no-op for the list.
func (r *Room) Join(connID, name string) []Effect {
	if r.playerIndex(connID) < 0 {
		if strings.TrimSpace(name) == "" {
			name = placeholderName(connID)
		}
		r.Players = append(r.Players, &Player{ID: connID, Name: name})
	}
	r.members[connID] = struct{}{}

	effects := []Effect{
		{To: ToConn(connID), Event: &Event{Kind: EventRoleAssigned, ClientType: ClientTypePlayer, RoomCode: r.Code}},
		{To: ToConn(connID), Event: &Event{Kind: EventInitState, HasModerator: r.ModeratorID != "", Count: len(r.Players)}},
		{To: ToRoom(r.Code), Event: &Event{Kind: EventPlayerCountUpdate, Count: len(r.Players)}},
	}
	if r.ModeratorID != "" {
		effects = append(effects, Effect{
			To:    ToConn(r.ModeratorID),
			Event: &Event{Kind: EventPlayerListUpdate, Players: r.playerList()},
		})
	}
	return effects
}

// AssignRoles shuffles the supplied roles uniformly (Fisher-Yates) and
// assigns them one-to-one to the players in join order, reporting whether
// the distribution happened. Moderator-only; unauthorized callers get no
// response at all. A role/player count mismatch leaves every player
// untouched and reports both counts to the caller.
func (r *Room) AssignRoles(callerID string, roles []string, rng *rand.Rand) ([]Effect, bool) {
	if r.ModeratorID == "" || callerID != r.ModeratorID {
		return nil, false
	}
	if len(roles) != len(r.Players) {
		msg := fmt.Sprintf("selected %d roles for %d players", len(roles), len(r.Players))
		return []Effect{{To: ToConn(callerID), Event: errorEvent(coreError(ErrCodeRoleCountMismatch, msg))}}, false
	}

	shuffled := append([]string(nil), roles...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	effects := make([]Effect, 0, len(r.Players)+2)
	for i, p := range r.Players {
		p.Role = shuffled[i]
		effects = append(effects, Effect{
			To:    ToConn(p.ID),
			Event: &Event{Kind: EventReceiveRole, Role: p.Role},
		})
	}
	r.Status = StatusAssigned

	effects = append(effects,
		Effect{To: ToConn(r.ModeratorID), Event: &Event{Kind: EventRoleSummary, Players: r.playerList()}},
		Effect{To: ToConn(r.ModeratorID), Event: &Event{Kind: EventStatusMsg, Text: fmt.Sprintf("assigned %d roles", len(roles))}},
	)
	return effects, true
}

// Reset clears every player's role and reverts the room to waiting.
// Moderator-only; unauthorized callers get no response.
func (r *Room) Reset(callerID string) []Effect {
	if r.ModeratorID == "" || callerID != r.ModeratorID {
		return nil
	}
	for _, p := range r.Players {
		p.Role = ""
	}
	r.Status = StatusWaiting

	return []Effect{
		{To: ToRoom(r.Code), Event: &Event{Kind: EventRoomReset}},
		{To: ToConn(r.ModeratorID), Event: &Event{Kind: EventPlayerListUpdate, Players: r.playerList()}},
		{To: ToConn(r.ModeratorID), Event: &Event{Kind: EventPlayerCountUpdate, Count: len(r.Players)}},
		{To: ToConn(r.ModeratorID), Event: &Event{Kind: EventStatusMsg, Text: "room reset, all roles cleared"}},
	}
}

// Kick removes the target player and unsubscribes it from the broadcast
// group. Moderator-only; unauthorized callers and unknown targets get no
// response.
func (r *Room) Kick(callerID, targetID string) []Effect {
	if r.ModeratorID == "" || callerID != r.ModeratorID {
		return nil
	}
	i := r.playerIndex(targetID)
	if i < 0 {
		return nil
	}
	r.Players = append(r.Players[:i], r.Players[i+1:]...)
	delete(r.members, targetID)

	return []Effect{
		{To: ToConn(targetID), Event: &Event{Kind: EventKicked}},
		{To: ToConn(targetID), Event: &Event{Kind: EventStatusMsg, Text: "the moderator removed you from room " + r.Code}},
		{To: ToRoom(r.Code), Event: &Event{Kind: EventPlayerCountUpdate, Count: len(r.Players)}},
		{To: ToConn(r.ModeratorID), Event: &Event{Kind: EventPlayerListUpdate, Players: r.playerList()}},
	}
}

// DropConnection handles one room's share of a disconnect: a departing
// moderator leaves the room unmoderated, a departing player shrinks the
// list. Connections with no stake in the room produce no effects.
func (r *Room) DropConnection(connID string) []Effect {
	if r.ModeratorID == connID {
		r.ModeratorID = ""
		delete(r.members, connID)
		effects := []Effect{
			{To: ToRoom(r.Code), Event: &Event{Kind: EventModStatusUpdate, HasModerator: false}},
		}
		// The moderator may have joined its own room as a player; that
		// entry leaves with the connection too, or the room never empties.
		if i := r.playerIndex(connID); i >= 0 {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			effects = append(effects, Effect{
				To:    ToRoom(r.Code),
				Event: &Event{Kind: EventPlayerCountUpdate, Count: len(r.Players)},
			})
		}
		return effects
	}

	i := r.playerIndex(connID)
	if i < 0 {
		delete(r.members, connID)
		return nil
	}
	r.Players = append(r.Players[:i], r.Players[i+1:]...)
	delete(r.members, connID)

	effects := []Effect{
		{To: ToRoom(r.Code), Event: &Event{Kind: EventPlayerCountUpdate, Count: len(r.Players)}},
	}
	if r.ModeratorID != "" {
		effects = append(effects, Effect{
			To:    ToConn(r.ModeratorID),
			Event: &Event{Kind: EventPlayerListUpdate, Players: r.playerList()},
		})
	}
	return effects
}
