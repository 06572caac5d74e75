// Package lobby tracks players that are connected but not currently in a
// room. The directory is owned by the hub's event loop and is not safe for
// concurrent use.
package lobby

import (
	"time"

	"cardroom/internal"
)

// Directory is the idle-player registry. Listing preserves insertion order so
// lobby broadcasts are stable between updates.
type Directory struct {
	players map[string]internal.Player
	order   []string
}

func NewDirectory() *Directory {
	return &Directory{
		players: make(map[string]internal.Player),
	}
}

// Add inserts or overwrites the entry for a connection. A blank name falls
// back to one derived from the connection id. Re-adding an existing id keeps
// its position in the listing.
func (d *Directory) Add(id, name string) internal.Player {
	if name == "" {
		name = "Player_" + shortID(id)
	}
	if _, exists := d.players[id]; !exists {
		d.order = append(d.order, id)
	}
	player := internal.Player{
		ID:       id,
		Name:     name,
		JoinedAt: time.Now().UnixMilli(),
	}
	d.players[id] = player
	return player
}

// Remove reports whether the id was present. Removing an absent id is a
// no-op.
func (d *Directory) Remove(id string) bool {
	if _, exists := d.players[id]; !exists {
		return false
	}
	delete(d.players, id)
	for i, pid := range d.order {
		if pid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

func (d *Directory) Get(id string) (internal.Player, bool) {
	p, ok := d.players[id]
	return p, ok
}

// Players returns all lobby entries in insertion order.
func (d *Directory) Players() []internal.Player {
	out := make([]internal.Player, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.players[id])
	}
	return out
}

func (d *Directory) Count() int {
	return len(d.players)
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
