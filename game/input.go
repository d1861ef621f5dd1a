package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.HandleKeyPress(desc.Key)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		if g.controls.Contains(mouse.X, mouse.Y) {
			return
		}
		cx, cy := g.field.ScreenToCell(mouse.X, mouse.Y)
		g.sim.PlaceFoodNear(cx, cy)
	}
}

// applyControls applies the buttons clicked on the controls panel.
func (g *Game) applyControls(actions ui.ControlActions) {
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Slower {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate - 1)
	}
	if actions.Faster {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate + 1)
	}
	for _, id := range actions.Toggled {
		g.overlays.Toggle(id)
	}
}

func clampSteps(n int) int {
	return max(1, min(n, maxStepsPerUpdate))
}
