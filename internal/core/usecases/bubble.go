package usecases

import (
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
)

// BubbleManager keeps at most one info bubble open on a surface.
type BubbleManager struct {
	surface ports.MapSurface
	id      domain.ObjectID
}

// NewBubbleManager returns a manager with no bubble open.
func NewBubbleManager(surface ports.MapSurface) *BubbleManager {
	return &BubbleManager{surface: surface}
}

// Show opens the bubble, or moves and re-captions the open one.
func (b *BubbleManager) Show(pos domain.GeoPoint, text string) {
	if b.id == "" {
		b.id = b.surface.OpenBubble(pos, text)
		return
	}
	b.surface.UpdateBubble(b.id, pos, text)
}

// Close closes the bubble if one is open.
func (b *BubbleManager) Close() {
	if b.id == "" {
		return
	}
	b.surface.CloseBubble(b.id)
	b.id = ""
}
