package systems

// FoodSet is an index-stable set of cell indices.
// Removal swaps the last element into the hole, so it is O(1) and
// never invalidates other members. Order is not meaningful.
type FoodSet struct {
	items []int
	pos   map[int]int // cell index -> position in items
}

// NewFoodSet creates an empty set.
func NewFoodSet() *FoodSet {
	return &FoodSet{pos: make(map[int]int)}
}

// Add inserts idx. Returns false if it was already present.
func (s *FoodSet) Add(idx int) bool {
	if _, ok := s.pos[idx]; ok {
		return false
	}
	s.pos[idx] = len(s.items)
	s.items = append(s.items, idx)
	return true
}

// Remove deletes idx. Returns false if it was absent.
func (s *FoodSet) Remove(idx int) bool {
	i, ok := s.pos[idx]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	moved := s.items[last]
	s.items[i] = moved
	s.pos[moved] = i
	s.items = s.items[:last]
	delete(s.pos, idx)
	return true
}

// Contains reports whether idx is in the set.
func (s *FoodSet) Contains(idx int) bool {
	_, ok := s.pos[idx]
	return ok
}

// Len returns the number of members.
func (s *FoodSet) Len() int {
	return len(s.items)
}

// Indices returns a snapshot of the members.
func (s *FoodSet) Indices() []int {
	out := make([]int, len(s.items))
	copy(out, s.items)
	return out
}
