package calendar

// Navigator decides which calendar cells are selectable and pages the grid
// in fixed 7-day windows. The grid spans from the Sunday on or before the
// fetched range start to the Saturday on or after the range end, so every
// page is a full Sunday-to-Saturday week.
type Navigator struct {
	cache    *Cache
	pages    [][]string
	active   int
	selected string
}

func NewNavigator(cache *Cache) *Navigator {
	n := &Navigator{cache: cache}
	n.rebuild()
	n.autoSelect()
	return n
}

func (n *Navigator) rebuild() {
	n.pages = nil
	start := n.cache.RangeStart()
	end := n.cache.RangeEnd()
	if start == "" || end == "" {
		return
	}
	offset := n.cache.Offset()
	gridStart := AddDays(start, -WeekdayIndex(start, offset), offset)
	gridEnd := AddDays(end, 6-WeekdayIndex(end, offset), offset)

	var page []string
	for cur := gridStart; cur != "" && cur <= gridEnd; cur = AddDays(cur, 1, offset) {
		page = append(page, cur)
		if len(page) == 7 {
			n.pages = append(n.pages, page)
			page = nil
		}
	}
	if len(page) > 0 {
		n.pages = append(n.pages, page)
	}
}

// autoSelect picks the earliest selectable date when nothing valid is
// selected, or clears the selection when no date qualifies.
func (n *Navigator) autoSelect() {
	if n.selected != "" && n.Selectable(n.selected) {
		return
	}
	n.selected = ""
	for _, date := range n.cache.AvailableDates() {
		if n.Selectable(date) {
			n.selected = date
			break
		}
	}
}

// Selectable reports whether a date can be picked: not a weekend and at
// least one open slot.
func (n *Navigator) Selectable(date string) bool {
	return !IsWeekend(date, n.cache.Offset()) && n.cache.HasSlots(date)
}

// SelectDate picks a date. Picking a non-selectable date is a silent no-op
// and returns false.
func (n *Navigator) SelectDate(date string) bool {
	if !n.Selectable(date) {
		return false
	}
	n.selected = date
	return true
}

// JumpToWeek pages to the given week, clamped to the valid range. When the
// target page does not contain the current selection, the first selectable
// date of that page is selected (or none) and true is returned so the
// caller can reset slot and submission state.
func (n *Navigator) JumpToWeek(index int) bool {
	if len(n.pages) == 0 {
		n.active = 0
		return false
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.pages)-1 {
		index = len(n.pages) - 1
	}
	n.active = index

	for _, date := range n.pages[index] {
		if date == n.selected && n.selected != "" {
			return false
		}
	}
	n.selected = ""
	for _, date := range n.pages[index] {
		if n.Selectable(date) {
			n.selected = date
			break
		}
	}
	return true
}

// Refresh swaps in a freshly fetched cache atomically. If the previously
// selected date lost its slots, selection falls back to the earliest
// available date or to none.
func (n *Navigator) Refresh(cache *Cache) {
	n.cache = cache
	n.rebuild()
	if len(n.pages) == 0 {
		n.active = 0
	} else if n.active > len(n.pages)-1 {
		n.active = len(n.pages) - 1
	}
	n.autoSelect()
}

func (n *Navigator) Pages() [][]string {
	return n.pages
}

func (n *Navigator) ActiveWeek() int {
	return n.active
}

func (n *Navigator) SelectedDate() string {
	return n.selected
}
