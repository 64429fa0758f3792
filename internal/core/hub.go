package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub routes client commands to room transitions and fans the resulting
// effects back out. A single goroutine owns the registry and every room,
// so handlers never interleave and no transition ever observes a
// half-applied mutation.
type Hub struct {
	registry *Registry
	log      *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	clients map[string]*Client
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub around an injected registry.
func NewHub(registry *Registry, logger *zerolog.Logger) *Hub {
	return &Hub{
		registry:   registry,
		log:        logger,
		register:   make(chan *Client, 8),
		unregister: make(chan *Client, 8),
		commands:   make(chan clientCommand, 64),
		clients:    make(map[string]*Client),
	}
}

// RegisterClient announces a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient announces a dropped connection; the hub runs the
// disconnect sweep across every room.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations, commands and disconnects until the context
// is cancelled. Each command is handled to completion before the next is
// dequeued.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			go h.pump(ctx, c)
			h.log.Debug().Str("conn_id", c.ID).Msg("client registered")
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		}
	}
}

// pump forwards one client's commands into the hub's single queue.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	if _, ok := h.clients[c.ID]; !ok {
		// Command raced with the client's disconnect; the sweep already ran.
		return
	}
	switch cmd.Kind {
	case CommandCreateRoom:
		h.handleCreateRoom(c)
	case CommandJoinRoom:
		h.handleJoinRoom(c, cmd)
	case CommandAssignRoles:
		h.handleAssignRoles(c, cmd)
	case CommandResetRoom:
		h.handleResetRoom(c, cmd)
	case CommandKickPlayer:
		h.handleKickPlayer(c, cmd)
	}
}

func (h *Hub) handleCreateRoom(c *Client) {
	code, err := h.registry.GenerateCode()
	if err != nil {
		h.log.Error().Err(err).Int("rooms", h.registry.Len()).Msg("room code generation failed")
		h.deliver(c, errorEvent(coreError(ErrCodeCodespaceExhausted, "no free room codes available")))
		return
	}
	room := h.registry.GetOrCreate(code)
	h.emit(room.Claim(c.ID))
	h.log.Info().Str("room", code).Str("conn_id", c.ID).Msg("room created")
}

func (h *Hub) handleJoinRoom(c *Client, cmd *Command) {
	code := NormalizeCode(cmd.RoomCode)
	room, ok := h.registry.Lookup(code)
	if !ok {
		h.deliver(c, errorEvent(coreError(ErrCodeRoomNotFound, "room "+code+" does not exist")))
		return
	}
	h.emit(room.Join(c.ID, cmd.Name))
	h.registry.Sweep(room)
	h.log.Info().Str("room", code).Str("conn_id", c.ID).Int("players", len(room.Players)).Msg("player joined")
}

func (h *Hub) handleAssignRoles(c *Client, cmd *Command) {
	room, ok := h.registry.Lookup(NormalizeCode(cmd.RoomCode))
	if !ok {
		h.deliver(c, errorEvent(coreError(ErrCodeRoomNotFound, "room does not exist")))
		return
	}
	effects, assigned := room.AssignRoles(c.ID, cmd.Roles, h.registry.rng)
	h.emit(effects)
	if assigned {
		h.log.Info().Str("room", room.Code).Int("players", len(room.Players)).Msg("roles assigned")
	}
}

func (h *Hub) handleResetRoom(c *Client, cmd *Command) {
	room, ok := h.registry.Lookup(NormalizeCode(cmd.RoomCode))
	if !ok {
		h.deliver(c, errorEvent(coreError(ErrCodeRoomNotFound, "room does not exist")))
		return
	}
	h.emit(room.Reset(c.ID))
}

func (h *Hub) handleKickPlayer(c *Client, cmd *Command) {
	room, ok := h.registry.Lookup(NormalizeCode(cmd.RoomCode))
	if !ok {
		h.deliver(c, errorEvent(coreError(ErrCodeRoomNotFound, "room does not exist")))
		return
	}
	h.emit(room.Kick(c.ID, cmd.TargetID))
	h.registry.Sweep(room)
}

// handleDisconnect walks every room the dropped connection had a stake in,
// emits the departure notices and garbage-collects rooms left empty.
// Iteration runs over a snapshot so Sweep can delete as it goes.
func (h *Hub) handleDisconnect(c *Client) {
	delete(h.clients, c.ID)
	for _, room := range h.registry.Rooms() {
		if !room.HasMember(c.ID) {
			continue
		}
		h.emit(room.DropConnection(c.ID))
		h.registry.Sweep(room)
	}
	close(c.Events)
	h.log.Debug().Str("conn_id", c.ID).Msg("client disconnected")
}

// emit executes transition effects: single-connection sends resolve
// through the client table, room sends fan out to the broadcast group.
func (h *Hub) emit(effects []Effect) {
	for _, ef := range effects {
		switch {
		case ef.To.Conn != "":
			if c, ok := h.clients[ef.To.Conn]; ok {
				h.deliver(c, ef.Event)
			}
		case ef.To.Room != "":
			room, ok := h.registry.Lookup(ef.To.Room)
			if !ok {
				continue
			}
			for id := range room.members {
				if c, ok := h.clients[id]; ok {
					h.deliver(c, ef.Event)
				}
			}
		}
	}
}

func (h *Hub) deliver(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
