package renderer

import (
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"

	"github.com/pthm-cable/antfarm/systems"
)

// Base colors.
var (
	Background   = color.RGBA{0xee, 0xee, 0xee, 0xff}
	HomeColor    = color.RGBA{0x44, 0x55, 0x33, 0xff}
	FoodColor    = color.RGBA{0xdd, 0x66, 0x66, 0xff}
	WallColor    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	AntColor     = color.RGBA{0x00, 0xdd, 0xaa, 0xff}
	DeadAntColor = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
)

// Trail hues in degrees: food-scent is red, home-scent is olive green.
const (
	foodTrailHue = 0.0
	homeTrailHue = 90.0
	trailSat     = 0.55
	trailVal     = 0.80

	// Combined pheromone at which a trail reaches full color before intensity scaling.
	trailSaturationLevel = 50.0
)

// Overlay selects which pheromone fields are drawn.
type Overlay struct {
	FoodTrail bool
	HomeTrail bool
}

// AllTrails shows both pheromone fields.
var AllTrails = Overlay{FoodTrail: true, HomeTrail: true}

// CellColor returns the display color of c. Food and home cells use their solid
// colors; empty cells blend from the background toward a trail hue that moves
// from red to green as home-scent dominates.
func CellColor(c *systems.Cell, intensity float64, ov Overlay) color.RGBA {
	switch c.Type {
	case systems.CellFood:
		return FoodColor
	case systems.CellHome:
		return HomeColor
	case systems.CellWall:
		return WallColor
	}

	var food, home float64
	if ov.FoodTrail {
		food = c.FoodPheromone
	}
	if ov.HomeTrail {
		home = c.HomePheromone
	}
	total := food + home
	if total <= 0 {
		return Background
	}

	hue := foodTrailHue + (homeTrailHue-foodTrailHue)*home/total
	r, g, b, err := colorconv.HSVToRGB(hue, trailSat, trailVal)
	if err != nil {
		return Background
	}
	amount := math.Min(total/trailSaturationLevel*intensity, 1)
	return lerpColor(Background, color.RGBA{r, g, b, 0xff}, amount)
}

// AntMarkColor returns the color an ant is drawn with.
func AntMarkColor(carrying, dead bool) color.RGBA {
	switch {
	case dead:
		return DeadAntColor
	case carrying:
		return FoodColor
	default:
		return AntColor
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}
