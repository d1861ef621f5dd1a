package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlActions reports which controls were clicked this frame.
type ControlActions struct {
	TogglePause bool
	Slower      bool
	Faster      bool
	Toggled     []OverlayID
}

// ControlsPanel renders the raygui buttons for run control and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition moves the panel's top-left corner.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Contains reports whether a screen point falls on the visible panel as last drawn.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height)
}

// Draw renders the panel and returns the actions clicked this frame.
func (c *ControlsPanel) Draw(paused bool, overlays *OverlayRegistry) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	const buttonH = 22
	rows := 1 + len(overlays.All())
	height := int32(rows*(buttonH+4)) + r.Theme.Padding*2
	c.height = height
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x) + pad
	y := float32(c.y) + pad
	inner := float32(c.width) - pad*2
	third := (inner - 8) / 3

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: third, Height: buttonH}, toggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + third + 4, Y: y, Width: third, Height: buttonH}, "Slower") {
		actions.Slower = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(third+4), Y: y, Width: third, Height: buttonH}, "Faster") {
		actions.Faster = true
	}
	y += buttonH + 4

	for _, desc := range overlays.All() {
		label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: buttonH}, toggleText(overlays.IsEnabled(desc.ID), "Hide "+label, "Show "+label)) {
			actions.Toggled = append(actions.Toggled, desc.ID)
		}
		y += buttonH + 4
	}

	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
