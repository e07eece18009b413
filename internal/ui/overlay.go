//go:build ebiten

package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws a one-line status HUD on top of the simulation.
type Overlay struct {
	visible bool
	status  string
}

// NewOverlay constructs a new overlay instance, visible by default.
func NewOverlay() *Overlay {
	return &Overlay{visible: true}
}

// SetStatus replaces the status line shown by the overlay.
func (o *Overlay) SetStatus(format string, args ...any) {
	o.status = fmt.Sprintf(format, args...)
}

// Update handles the overlay's own input: H toggles visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.visible = !o.visible
	}
}

// Draw renders the status line when the overlay is visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.status == "" {
		return
	}
	ebitenutil.DebugPrint(screen, o.status)
}
