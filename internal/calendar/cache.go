package calendar

import (
	"sort"
	"time"

	"boveda/internal/entities"
)

// DefaultOffset is assumed when the gateway payload carries no usable
// timestamp (Buenos Aires, the operator's reporting offset).
const DefaultOffset = "-03:00"

// dateKeyLayout parses a date key anchored at midnight in the reporting
// offset, e.g. "2024-10-01T00:00:00-03:00".
const dateKeyLayout = "2006-01-02T15:04:05-07:00"

// DateKeyOf returns the calendar date of an ISO timestamp in its own
// reporting offset. The slice is textual on purpose: converting to the
// viewer's local time can shift the date across midnight.
func DateKeyOf(timestamp string) string {
	if len(timestamp) < 10 {
		return ""
	}
	return timestamp[:10]
}

// offsetOf slices the UTC offset suffix off an ISO timestamp. The gateway
// always emits a fixed-width offset, so the suffix starts at index 19. A
// conforming backend may still write "Z" for UTC; the date math needs the
// numeric form.
func offsetOf(timestamp string) string {
	if len(timestamp) <= 19 {
		return ""
	}
	if off := timestamp[19:]; off != "Z" && off != "z" {
		return off
	}
	return "+00:00"
}

// Cache maps calendar dates to their bookable slots. It is populated once
// from a fetched AvailabilityResponse and never mutated afterwards; a
// refetch builds a new Cache.
type Cache struct {
	offset      string
	rangeStart  string
	rangeEnd    string
	slotsByDate map[string][]entities.Slot
	dates       []string
}

// NewCache buckets the flat slot list by calendar date. A nil response
// yields an empty cache.
func NewCache(resp *entities.AvailabilityResponse) *Cache {
	c := &Cache{
		offset:      DefaultOffset,
		slotsByDate: make(map[string][]entities.Slot),
	}
	if resp == nil {
		return c
	}

	if off := offsetOf(resp.Range.Start); off != "" {
		c.offset = off
	} else if len(resp.Slots) > 0 {
		if off := offsetOf(resp.Slots[0].Start); off != "" {
			c.offset = off
		}
	}

	for _, slot := range resp.Slots {
		key := DateKeyOf(slot.Start)
		if key == "" {
			continue
		}
		c.slotsByDate[key] = append(c.slotsByDate[key], slot)
	}
	for key := range c.slotsByDate {
		c.dates = append(c.dates, key)
	}
	sort.Strings(c.dates)

	c.rangeStart = DateKeyOf(resp.Range.Start)
	if c.rangeStart == "" && len(c.dates) > 0 {
		c.rangeStart = c.dates[0]
	}
	// Range end is exclusive on the wire; the last bookable date is the
	// day before it.
	if end := DateKeyOf(resp.Range.End); end != "" {
		c.rangeEnd = AddDays(end, -1, c.offset)
	} else if len(c.dates) > 0 {
		c.rangeEnd = c.dates[len(c.dates)-1]
	} else if c.rangeStart != "" {
		c.rangeEnd = AddDays(c.rangeStart, 27, c.offset)
	}
	return c
}

// SlotsFor returns the ordered slots on the given date, empty if none.
func (c *Cache) SlotsFor(date string) []entities.Slot {
	return c.slotsByDate[date]
}

// AvailableDates returns the ascending list of dates with at least one slot.
func (c *Cache) AvailableDates() []string {
	return c.dates
}

func (c *Cache) HasSlots(date string) bool {
	return len(c.slotsByDate[date]) > 0
}

// HoldsSlot reports whether the given slot belongs to the given date's list.
func (c *Cache) HoldsSlot(date string, slot entities.Slot) bool {
	for _, s := range c.slotsByDate[date] {
		if s.Start == slot.Start {
			return true
		}
	}
	return false
}

// Offset returns the reporting UTC offset (e.g. "-03:00").
func (c *Cache) Offset() string {
	return c.offset
}

// RangeStart returns the first date of the fetched range, "" if unknown.
func (c *Cache) RangeStart() string {
	return c.rangeStart
}

// RangeEnd returns the last bookable date of the fetched range, "" if unknown.
func (c *Cache) RangeEnd() string {
	return c.rangeEnd
}

// AddDays shifts a date key by the given number of days, anchored at
// midnight in the reporting offset.
func AddDays(date string, days int, offset string) string {
	t, err := time.Parse(dateKeyLayout, date+"T00:00:00"+offset)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}

// WeekdayIndex returns the weekday of a date key, Sunday = 0.
func WeekdayIndex(date, offset string) int {
	t, err := time.Parse(dateKeyLayout, date+"T00:00:00"+offset)
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}

// IsWeekend reports whether the date falls on Saturday or Sunday in the
// reporting offset.
func IsWeekend(date, offset string) bool {
	wd := WeekdayIndex(date, offset)
	return wd == 0 || wd == 6
}
