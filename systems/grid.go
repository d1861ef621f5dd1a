package systems

// CellType classifies a grid cell.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellFood
	CellHome
	CellWall
)

func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellFood:
		return "food"
	case CellHome:
		return "home"
	case CellWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Cell is the state at one grid location.
type Cell struct {
	X, Y          int
	Type          CellType
	FoodPheromone float64
	HomePheromone float64
}

// Grid is a fixed-size field of cells with no wraparound.
// It also tracks which cells currently hold food.
type Grid struct {
	cells  []Cell
	width  int
	height int
	foods  *FoodSet
}

// NewGrid creates an empty width x height grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
		foods:  NewFoodSet(),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &g.cells[x+y*width]
			c.X = x
			c.Y = y
		}
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// CellAt returns the cell at (x, y), or nil outside the grid.
func (g *Grid) CellAt(x, y int) *Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return &g.cells[x+y*g.width]
}

// index returns the dense index of a cell owned by this grid.
func (g *Grid) index(c *Cell) int {
	return c.X + c.Y*g.width
}

// Cells returns the backing slice for whole-field passes (decay, rendering).
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Foods returns the active food set.
func (g *Grid) Foods() *FoodSet {
	return g.foods
}

// PlaceFood converts every Empty cell in the (2r+1)² square around (x, y) to Food.
// Returns the number of cells converted.
func (g *Grid) PlaceFood(x, y, radius int) int {
	placed := 0
	for cy := y - radius; cy <= y+radius; cy++ {
		for cx := x - radius; cx <= x+radius; cx++ {
			c := g.CellAt(cx, cy)
			if c == nil || c.Type != CellEmpty {
				continue
			}
			c.Type = CellFood
			g.foods.Add(g.index(c))
			placed++
		}
	}
	return placed
}

// ClearFood resets the cell to Empty and drops it from the food set.
func (g *Grid) ClearFood(c *Cell) {
	c.Type = CellEmpty
	g.foods.Remove(g.index(c))
}

// FillBlock sets every in-bounds cell of the size x size block at (x, y) to t.
// Food cells are registered in the food set; cells that stop being food are dropped from it.
func (g *Grid) FillBlock(x, y, size int, t CellType) {
	for cy := y; cy < y+size; cy++ {
		for cx := x; cx < x+size; cx++ {
			c := g.CellAt(cx, cy)
			if c == nil {
				continue
			}
			c.Type = t
			if t == CellFood {
				g.foods.Add(g.index(c))
			} else {
				g.foods.Remove(g.index(c))
			}
		}
	}
}

// FoodCells returns the cells currently holding food.
func (g *Grid) FoodCells() []*Cell {
	out := make([]*Cell, 0, g.foods.Len())
	for _, idx := range g.foods.Indices() {
		out = append(out, &g.cells[idx])
	}
	return out
}

// ManhattanDistance returns |ax-bx| + |ay-by|.
func ManhattanDistance(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
