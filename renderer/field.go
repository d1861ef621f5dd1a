// Package renderer draws the colony grid with raylib.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/systems"
)

// AntMark is the drawable state of one ant.
type AntMark struct {
	X, Y     int
	Carrying bool
	Dead     bool
}

// FieldRenderer draws the grid as one texture, one texel per cell, scaled to the screen.
type FieldRenderer struct {
	tex         rl.Texture2D
	pixels      []color.RGBA
	texW, texH  int
	cellScale   float32
	intensity   float64
	initialized bool
}

// NewFieldRenderer creates a renderer drawing each cell as cellScale x cellScale pixels.
// intensity scales how quickly pheromone trails reach full color.
func NewFieldRenderer(cellScale float32, intensity float64) *FieldRenderer {
	return &FieldRenderer{cellScale: cellScale, intensity: intensity}
}

// Init creates the GPU texture (must be called after the raylib window is created).
func (r *FieldRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}
	r.texW = gridW
	r.texH = gridH
	r.pixels = make([]color.RGBA, gridW*gridH)

	img := rl.GenImageColor(gridW, gridH, Background)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update recolors every cell and uploads the result to the texture.
func (r *FieldRenderer) Update(g *systems.Grid, ov Overlay) {
	if !r.initialized {
		r.Init(g.Width(), g.Height())
	}
	cells := g.Cells()
	if len(cells) != len(r.pixels) {
		return
	}
	for i := range cells {
		r.pixels[i] = CellColor(&cells[i], r.intensity, ov)
	}
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the field texture followed by the ants.
func (r *FieldRenderer) Draw(ants []AntMark) {
	if !r.initialized {
		return
	}

	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW) * r.cellScale, Height: float32(r.texH) * r.cellScale}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)

	// Ants cover 2x2 cells so they stay visible over trails
	size := int32(2 * r.cellScale)
	for _, a := range ants {
		rl.DrawRectangle(int32(float32(a.X)*r.cellScale), int32(float32(a.Y)*r.cellScale), size, size, AntMarkColor(a.Carrying, a.Dead))
	}
}

// ScreenToCell converts a screen position to grid coordinates.
func (r *FieldRenderer) ScreenToCell(x, y float32) (cx, cy int) {
	if r.cellScale <= 0 {
		return int(math.Floor(float64(x))), int(math.Floor(float64(y)))
	}
	return int(math.Floor(float64(x / r.cellScale))), int(math.Floor(float64(y / r.cellScale)))
}

// Unload frees GPU resources.
func (r *FieldRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
