package game

import (
	"math/rand"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Item is one discovered image on the shared evidence board.
type Item struct {
	ID  string  `json:"id"`
	Src string  `json:"src"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// Board is the per-room evidence canvas. Discovery is append-only and
// deduplicated by image reference; placement is last-writer-wins.
type Board struct {
	items []Item
}

// canvasPos picks a drop position for newly discovered evidence. Var so
// tests can pin it.
var canvasPos = func() (float64, float64) {
	return 40 + rand.Float64()*720, 40 + rand.Float64()*520
}

// IsEvidenceImage reports whether a scene image belongs on the board.
// Character portraits and the disguise asset are display chrome, not
// evidence, and are recognized by filename convention.
func IsEvidenceImage(src string) bool {
	if src == "" {
		return false
	}
	base := path.Base(src)
	if strings.HasPrefix(base, "portrait_") {
		return false
	}
	return base != "disguise.png"
}

// Reveal catalogues an image if it is not already on the board. Reports
// the item and whether it was newly added.
func (b *Board) Reveal(src string) (Item, bool) {
	for _, it := range b.items {
		if it.Src == src {
			return it, false
		}
	}
	x, y := canvasPos()
	it := Item{ID: uuid.NewString(), Src: src, X: x, Y: y}
	b.items = append(b.items, it)
	return it, true
}

// Move repositions an item. Reports false for unknown ids.
func (b *Board) Move(id string, x, y float64) bool {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].X = x
			b.items[i].Y = y
			return true
		}
	}
	return false
}

// Items returns a copy safe to hand to the transport layer.
func (b *Board) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Board) Reset() { b.items = nil }
