package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CellInfo describes the cell under the cursor.
type CellInfo struct {
	X, Y          int
	Type          string
	FoodPheromone float64
	HomePheromone float64
	Ants          int // ants standing on the cell
}

// Lines formats the tooltip contents.
func (ci CellInfo) Lines() []string {
	return []string{
		fmt.Sprintf("(%d,%d) %s", ci.X, ci.Y, ci.Type),
		fmt.Sprintf("food %.2f", ci.FoodPheromone),
		fmt.Sprintf("home %.2f", ci.HomePheromone),
		fmt.Sprintf("ants %d", ci.Ants),
	}
}

// CellInspector draws a tooltip for the hovered cell.
type CellInspector struct {
	renderer *Renderer
	screenW  int32
	screenH  int32
}

// NewCellInspector creates an inspector that keeps tooltips inside the screen.
func NewCellInspector(screenW, screenH int32) *CellInspector {
	return &CellInspector{renderer: NewRenderer(), screenW: screenW, screenH: screenH}
}

// Draw renders info next to the mouse position.
func (ci *CellInspector) Draw(info CellInfo, mouseX, mouseY int32) {
	r := ci.renderer
	lines := info.Lines()

	width := int32(0)
	for _, l := range lines {
		width = max(width, rl.MeasureText(l, r.Theme.FontSize))
	}
	width += r.Theme.Padding * 2
	height := int32(len(lines))*r.Theme.LineHeight + r.Theme.Padding*2

	x, y := TooltipOrigin(mouseX, mouseY, width, height, ci.screenW, ci.screenH)
	r.DrawPanel(x, y, width, height)
	for i, l := range lines {
		rl.DrawText(l, x+r.Theme.Padding, y+r.Theme.Padding+int32(i)*r.Theme.LineHeight, r.Theme.FontSize, r.Theme.ValueColor)
	}
}

// TooltipOrigin places a w x h tooltip right-below the cursor, flipping it
// to the other side when it would leave the screen.
func TooltipOrigin(mouseX, mouseY, w, h, screenW, screenH int32) (x, y int32) {
	const offset = 12
	x = mouseX + offset
	y = mouseY + offset
	if x+w > screenW {
		x = mouseX - offset - w
	}
	if y+h > screenH {
		y = mouseY - offset - h
	}
	return max(x, 0), max(y, 0)
}
