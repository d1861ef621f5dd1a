package renderer

import (
	"testing"

	"github.com/pthm-cable/antfarm/systems"
)

func TestCellColorSolidTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  systems.CellType
		want any
	}{
		{"food", systems.CellFood, FoodColor},
		{"home", systems.CellHome, HomeColor},
		{"wall", systems.CellWall, WallColor},
		{"bare empty", systems.CellEmpty, Background},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &systems.Cell{Type: tt.typ}
			if got := CellColor(c, 30, AllTrails); got != tt.want {
				t.Errorf("CellColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCellColorTrailHue(t *testing.T) {
	food := CellColor(&systems.Cell{FoodPheromone: 100}, 30, AllTrails)
	if food.R <= food.G {
		t.Errorf("food trail %v should be red dominant", food)
	}

	home := CellColor(&systems.Cell{HomePheromone: 100}, 30, AllTrails)
	if home.G <= home.R || home.G <= home.B {
		t.Errorf("home trail %v should be green dominant", home)
	}
}

func TestCellColorIntensityBlend(t *testing.T) {
	faint := CellColor(&systems.Cell{FoodPheromone: 0.1}, 1, AllTrails)
	strong := CellColor(&systems.Cell{FoodPheromone: 40}, 1, AllTrails)

	// Stronger trails move further from the light background
	if int(faint.G) <= int(strong.G) {
		t.Errorf("faint %v should be closer to background than strong %v", faint, strong)
	}
}

func TestCellColorOverlayHidesField(t *testing.T) {
	c := &systems.Cell{FoodPheromone: 10}
	if got := CellColor(c, 30, Overlay{HomeTrail: true}); got != Background {
		t.Errorf("hidden food trail drawn as %v", got)
	}
	if got := CellColor(c, 30, Overlay{FoodTrail: true}); got == Background {
		t.Error("visible food trail drawn as background")
	}
}

func TestAntMarkColor(t *testing.T) {
	if AntMarkColor(false, false) != AntColor {
		t.Error("foraging ant color")
	}
	if AntMarkColor(true, false) != FoodColor {
		t.Error("carrying ant color")
	}
	if AntMarkColor(true, true) != DeadAntColor {
		t.Error("dead ant color")
	}
}

func TestScreenToCell(t *testing.T) {
	r := NewFieldRenderer(4, 30)
	tests := []struct {
		x, y   float32
		cx, cy int
	}{
		{0, 0, 0, 0},
		{3.9, 4, 0, 1},
		{399, 17, 99, 4},
		{-1, 8, -1, 2},
	}
	for _, tt := range tests {
		if cx, cy := r.ScreenToCell(tt.x, tt.y); cx != tt.cx || cy != tt.cy {
			t.Errorf("ScreenToCell(%v,%v) = (%d,%d), want (%d,%d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}
