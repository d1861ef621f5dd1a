package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstDelivery  BookmarkType = "first_delivery"
	BookmarkDeliverySurge  BookmarkType = "delivery_surge"
	BookmarkFoodExhausted  BookmarkType = "food_exhausted"
	BookmarkColonyCollapse BookmarkType = "colony_collapse"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the colony's history.
type BookmarkDetector struct {
	// Rolling delivery history (circular buffer)
	history     []int
	historyIdx  int
	historyFull bool

	seenDelivery  bool
	foodExhausted bool // latched until food reappears
	collapsed     bool // latched until an ant is alive again
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{history: make([]int, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.seenDelivery && stats.Deliveries > 0 {
		bd.seenDelivery = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstDelivery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("First food delivered (%d this window)", stats.Deliveries),
		})
	}

	if b := bd.checkDeliverySurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	switch {
	case stats.FoodRemaining == 0 && !bd.foodExhausted:
		bd.foodExhausted = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFoodExhausted,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("All food collected after %d deliveries", stats.TotalDeliveries),
		})
	case stats.FoodRemaining > 0:
		bd.foodExhausted = false
	}

	switch {
	case stats.Alive == 0 && stats.Dead > 0 && !bd.collapsed:
		bd.collapsed = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkColonyCollapse,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("All %d ants dead", stats.Dead),
		})
	case stats.Alive > 0:
		bd.collapsed = false
	}

	bd.addToHistory(stats.Deliveries)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(deliveries int) {
	bd.history[bd.historyIdx] = deliveries
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []int {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// Delivery surge: deliveries > 2x rolling average, with at least 3 windows of history.
func (bd *BookmarkDetector) checkDeliverySurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	total := 0
	for _, d := range history {
		total += d
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Deliveries) > avg*2 && stats.Deliveries >= 3 {
		return &Bookmark{
			Type:        BookmarkDeliverySurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d deliveries is %.1fx average (%.1f)", stats.Deliveries, float64(stats.Deliveries)/avg, avg),
		}
	}
	return nil
}
