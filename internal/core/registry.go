package core

import (
	"math/rand/v2"
	"strings"
)

// 33 symbols: uppercase letters and digits with the easily confused
// I, O and 0 left out. Four symbols give a codespace of 33^4 (~1.19M)
// live rooms, far beyond what a single process will ever hold.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ123456789"

const (
	codeLength = 4

	// maxCodeAttempts bounds collision retries. Hitting it means the
	// registry is close to exhausting the codespace, which we report
	// instead of looping forever.
	maxCodeAttempts = 2048
)

// Registry owns every live room, keyed by code. It is handed to the hub
// at construction and only ever touched from the hub's event loop, so no
// locking is needed.
type Registry struct {
	rooms map[string]*Room
	rng   *rand.Rand
}

// NewRegistry constructs an empty registry drawing codes from rng.
func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		rng:   rng,
	}
}

// NormalizeCode maps client-supplied codes onto the canonical form:
// whitespace-trimmed and uppercased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateCode draws 4 symbols uniformly from the code alphabet, retrying
// until the result does not collide with a live room. Returns
// ErrCodespaceExhausted if no free code turns up within the retry bound.
func (g *Registry) GenerateCode() (string, error) {
	buf := make([]byte, codeLength)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		for i := range buf {
			buf[i] = codeAlphabet[g.rng.IntN(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := g.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodespaceExhausted
}

// GetOrCreate returns the room for code, creating a fresh waiting room
// if none exists. Only the creator's own code-generation path may reach
// the create branch; join validation goes through Lookup instead.
func (g *Registry) GetOrCreate(code string) *Room {
	if room, ok := g.rooms[code]; ok {
		return room
	}
	room := newRoom(code)
	g.rooms[code] = room
	return room
}

// Lookup is the read-only resolution used by join validation.
func (g *Registry) Lookup(code string) (*Room, bool) {
	room, ok := g.rooms[code]
	return room, ok
}

// Sweep deletes the room if it has neither players nor a moderator.
// Called after every membership-affecting event.
func (g *Registry) Sweep(room *Room) {
	if room.Empty() {
		delete(g.rooms, room.Code)
	}
}

// Rooms snapshots the live rooms so callers can iterate while mutating
// the registry, as the disconnect sweep does.
func (g *Registry) Rooms() []*Room {
	rooms := make([]*Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	return len(g.rooms)
}
