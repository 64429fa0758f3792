package core

import (
	"strings"
	"testing"
)

func TestHubCreateRoom(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}

	created := mustEvent(t, mod.Events, EventRoomCreated)
	if len(created.RoomCode) != 4 {
		t.Fatalf("expected 4-symbol room code, got %q", created.RoomCode)
	}

	role := mustEvent(t, mod.Events, EventRoleAssigned)
	if role.ClientType != ClientTypeModerator {
		t.Fatalf("creator should be moderator, got %q", role.ClientType)
	}

	list := mustEvent(t, mod.Events, EventPlayerListUpdate)
	if len(list.Players) != 0 {
		t.Fatalf("fresh room should have no players, got %+v", list.Players)
	}

	initState := mustEvent(t, mod.Events, EventInitState)
	if !initState.HasModerator || initState.Count != 0 {
		t.Fatalf("unexpected init state: %+v", initState)
	}
}

func TestHubJoinNormalizesCode(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode

	// Drain the moderator's creation burst so the next list update we
	// see belongs to the join.
	mustEvent(t, mod.Events, EventInitState)

	player := NewClient("player-1")
	hub.RegisterClient(player)
	player.Commands <- &Command{
		Kind:     CommandJoinRoom,
		RoomCode: "  " + strings.ToLower(code) + " ",
		Name:     "Ana",
	}

	role := mustEvent(t, player.Events, EventRoleAssigned)
	if role.ClientType != ClientTypePlayer || role.RoomCode != code {
		t.Fatalf("unexpected player role event: %+v", role)
	}

	initState := mustEvent(t, player.Events, EventInitState)
	if !initState.HasModerator || initState.Count != 1 {
		t.Fatalf("unexpected init state: %+v", initState)
	}

	count := mustEvent(t, mod.Events, EventPlayerCountUpdate)
	if count.Count != 1 {
		t.Fatalf("expected count 1, got %d", count.Count)
	}

	list := mustEvent(t, mod.Events, EventPlayerListUpdate)
	if len(list.Players) != 1 || list.Players[0].Name != "Ana" || list.Players[0].Role != "" {
		t.Fatalf("unexpected moderator list: %+v", list.Players)
	}
}

func TestHubJoinUnknownRoom(t *testing.T) {
	hub := newTestHub(t)

	player := NewClient("player-1")
	hub.RegisterClient(player)
	player.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: "ZZZZ"}

	ev := mustEvent(t, player.Events, EventErrorMsg)
	if ev.Error == nil || ev.Error.Code != ErrCodeRoomNotFound {
		t.Fatalf("expected room_not_found error, got %+v", ev)
	}
}

func TestHubAssignRoles(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode

	ana := NewClient("player-ana")
	ben := NewClient("player-ben")
	hub.RegisterClient(ana)
	hub.RegisterClient(ben)
	ana.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Ana"}
	mustEvent(t, ana.Events, EventInitState)
	ben.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Ben"}
	mustEvent(t, ben.Events, EventInitState)

	roles := []string{"Wolf", "Villager"}
	mod.Commands <- &Command{Kind: CommandAssignRoles, RoomCode: code, Roles: roles}

	anaRole := mustEvent(t, ana.Events, EventReceiveRole).Role
	benRole := mustEvent(t, ben.Events, EventReceiveRole).Role
	if anaRole == benRole {
		t.Fatalf("both players got %q, expected a bijection", anaRole)
	}
	got := map[string]bool{anaRole: true, benRole: true}
	if !got["Wolf"] || !got["Villager"] {
		t.Fatalf("assigned roles %q/%q do not match supplied set", anaRole, benRole)
	}

	summary := mustEvent(t, mod.Events, EventRoleSummary)
	if len(summary.Players) != 2 || summary.Players[0].Name != "Ana" || summary.Players[1].Name != "Ben" {
		t.Fatalf("summary should pair both names in join order: %+v", summary.Players)
	}
	for _, p := range summary.Players {
		if p.Role == "" {
			t.Fatalf("summary entry missing role: %+v", p)
		}
	}
	mustEvent(t, mod.Events, EventStatusMsg)
}

func TestHubAssignRolesCountMismatch(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode

	player := NewClient("player-1")
	hub.RegisterClient(player)
	player.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Solo"}
	mustEvent(t, player.Events, EventInitState)

	mod.Commands <- &Command{Kind: CommandAssignRoles, RoomCode: code, Roles: []string{"Wolf", "Seer", "Witch"}}

	ev := mustEvent(t, mod.Events, EventErrorMsg)
	if ev.Error == nil || ev.Error.Code != ErrCodeRoleCountMismatch {
		t.Fatalf("expected role_count_mismatch, got %+v", ev)
	}
	if !strings.Contains(ev.Error.Message, "3") || !strings.Contains(ev.Error.Message, "1") {
		t.Fatalf("error should report both counts, got %q", ev.Error.Message)
	}
}

func TestHubKickPlayer(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode
	mustEvent(t, mod.Events, EventInitState)

	player := NewClient("player-1")
	hub.RegisterClient(player)
	player.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Ana"}
	mustEvent(t, player.Events, EventInitState)

	mod.Commands <- &Command{Kind: CommandKickPlayer, RoomCode: code, TargetID: "player-1"}

	mustEvent(t, player.Events, EventKicked)
	notice := mustEvent(t, player.Events, EventStatusMsg)
	if notice.Text == "" {
		t.Fatal("kicked player should get an explanatory message")
	}

	count := mustEvent(t, mod.Events, EventPlayerCountUpdate)
	for count.Count != 0 {
		count = mustEvent(t, mod.Events, EventPlayerCountUpdate)
	}
}

func TestHubModeratorDisconnectAndRoomCleanup(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode

	player := NewClient("player-1")
	hub.RegisterClient(player)
	player.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Ana"}
	mustEvent(t, player.Events, EventInitState)

	hub.UnregisterClient(mod)

	modStatus := mustEvent(t, player.Events, EventModStatusUpdate)
	if modStatus.HasModerator {
		t.Fatalf("expected moderator loss notice, got %+v", modStatus)
	}

	// Last player leaves an unmoderated room: the code must stop resolving.
	hub.UnregisterClient(player)

	late := NewClient("late-1")
	hub.RegisterClient(late)
	late.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code}

	ev := mustEvent(t, late.Events, EventErrorMsg)
	if ev.Error == nil || ev.Error.Code != ErrCodeRoomNotFound {
		t.Fatalf("room should be deleted after last member left, got %+v", ev)
	}
}

func TestHubModeratorSelfJoinCleanup(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode

	// The moderator also joins its own room as a player.
	mod.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Host"}
	mustEvent(t, mod.Events, EventPlayerCountUpdate)

	hub.UnregisterClient(mod)

	late := NewClient("late-1")
	hub.RegisterClient(late)
	late.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code}

	ev := mustEvent(t, late.Events, EventErrorMsg)
	if ev.Error == nil || ev.Error.Code != ErrCodeRoomNotFound {
		t.Fatalf("room should be deleted once its only connection dropped, got %+v", ev)
	}
}

func TestHubResetRoom(t *testing.T) {
	hub := newTestHub(t)

	mod := NewClient("mod-1")
	hub.RegisterClient(mod)
	mod.Commands <- &Command{Kind: CommandCreateRoom}
	code := mustEvent(t, mod.Events, EventRoomCreated).RoomCode
	mustEvent(t, mod.Events, EventInitState)

	player := NewClient("player-1")
	hub.RegisterClient(player)
	player.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: "Ana"}
	mustEvent(t, player.Events, EventInitState)

	mod.Commands <- &Command{Kind: CommandAssignRoles, RoomCode: code, Roles: []string{"Wolf"}}
	mustEvent(t, player.Events, EventReceiveRole)
	// Drain the assign burst so everything below comes from the reset.
	mustEvent(t, mod.Events, EventRoleSummary)
	mustEvent(t, mod.Events, EventStatusMsg)

	mod.Commands <- &Command{Kind: CommandResetRoom, RoomCode: code}

	mustEvent(t, player.Events, EventRoomReset)
	refreshed := mustEvent(t, mod.Events, EventPlayerListUpdate)
	if len(refreshed.Players) != 1 || refreshed.Players[0].Role != "" {
		t.Fatalf("reset should clear roles, got %+v", refreshed.Players)
	}
	count := mustEvent(t, mod.Events, EventPlayerCountUpdate)
	if count.Count != 1 {
		t.Fatalf("reset should refresh the count, got %d", count.Count)
	}
	status := mustEvent(t, mod.Events, EventStatusMsg)
	if status.Text == "" {
		t.Fatal("reset should deliver a status message to the moderator")
	}
}
