package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool

	Alive           int
	Dead            int
	Carrying        int
	FoodRemaining   int
	TotalDeliveries int
	FoodPheromone   float64
	HomePheromone   float64
}

// StatusLine formats the tick/speed line shown at the top of the HUD.
func (d HUDData) StatusLine() string {
	status := "running"
	if d.Paused {
		status = "PAUSED"
	}
	return fmt.Sprintf("Tick %d | %dx | %d FPS | %s", d.Tick, d.StepsPerUpdate, d.FPS, status)
}

// HUD renders the colony stats panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	pad := r.Theme.Padding
	inner := h.width - pad*2

	r.DrawPanel(h.x, h.y, h.width, r.Theme.LineHeight*10+pad*2)

	y := h.y + pad
	rl.DrawText(data.StatusLine(), h.x+pad, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight + 2

	y = r.DrawSectionHeader(h.x+pad, y, "Colony")
	y = r.DrawLabelValue(h.x+pad, y, "Alive", fmt.Sprintf("%d", data.Alive))
	y = r.DrawLabelValue(h.x+pad, y, "Dead", fmt.Sprintf("%d", data.Dead))
	y = r.DrawLabelValue(h.x+pad, y, "Carrying", fmt.Sprintf("%d", data.Carrying))
	y = r.DrawLabelValue(h.x+pad, y, "Food left", fmt.Sprintf("%d", data.FoodRemaining))
	y = r.DrawLabelValue(h.x+pad, y, "Delivered", fmt.Sprintf("%d", data.TotalDeliveries))

	peak := max(data.FoodPheromone, data.HomePheromone)
	y = r.DrawBar(h.x+pad, y, "Food scent", data.FoodPheromone, peak, inner)
	y = r.DrawBar(h.x+pad, y, "Home scent", data.HomePheromone, peak, inner)

	return y + pad
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, h.renderer.Theme.FontSize, rl.DarkGray)
}
