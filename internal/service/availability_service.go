package service

import (
	"fmt"
	"log"
	"time"

	"boveda/internal/entities"
	"boveda/internal/repository"
)

// timeLayout always emits a numeric UTC offset (never "Z"): the widget
// slices the offset out of fixed character positions.
const timeLayout = "2006-01-02T15:04:05-07:00"

// Meetings run Monday to Friday in three fixed evening slots of one hour.
var slotStartHours = []int{18, 19, 20}

const (
	DefaultDays = 10
	MaxDays     = 31
)

// BusySource yields the occupied windows the slot generator must avoid.
type BusySource interface {
	BusyBetween(start, end time.Time) ([]repository.BusyWindow, error)
}

type AvailabilityService struct {
	source BusySource
	loc    *time.Location
	now    func() time.Time
}

func NewAvailabilityService(source BusySource, loc *time.Location) *AvailabilityService {
	return &AvailabilityService{
		source: source,
		loc:    loc,
		now:    time.Now,
	}
}

// Availability generates the open slots for the next `days` days, clamped
// to the current Monday-start week. Slots that already started, fall on a
// weekend or overlap a busy window are excluded.
func (s *AvailabilityService) Availability(days int) (*entities.AvailabilityResponse, error) {
	if days < 1 {
		days = DefaultDays
	}
	if days > MaxDays {
		days = MaxDays
	}

	now := s.now().In(s.loc)
	weekStart, weekEnd := weekBounds(now)

	rangeEnd := now.AddDate(0, 0, days)
	if rangeEnd.After(weekEnd) {
		rangeEnd = weekEnd
	}

	resp := &entities.AvailabilityResponse{
		TZ: s.loc.String(),
		Range: entities.DateRange{
			Start: now.Format(timeLayout),
			End:   rangeEnd.Format(timeLayout),
		},
		Week: entities.DateRange{
			Start: weekStart.Format(timeLayout),
			End:   weekEnd.Format(timeLayout),
		},
		Slots: []entities.Slot{},
	}

	if !rangeEnd.After(now) {
		return resp, nil
	}

	busy, err := s.source.BusyBetween(now, rangeEnd)
	if err != nil {
		log.Printf("Error from BusyBetween: %v", err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	year, month, day := now.Date()
	cursor := time.Date(year, month, day, 0, 0, 0, 0, s.loc)
	for !cursor.After(rangeEnd) {
		if isBookableWeekday(cursor.Weekday()) {
			for _, hour := range slotStartHours {
				start := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), hour, 0, 0, 0, s.loc)
				end := start.Add(time.Hour)
				if start.Before(now) {
					continue
				}
				if start.Before(weekStart) || !start.Before(weekEnd) {
					continue
				}
				if overlapsAny(start, end, busy) {
					continue
				}
				resp.Slots = append(resp.Slots, entities.Slot{
					Start: start.Format(timeLayout),
					End:   end.Format(timeLayout),
					Label: fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
				})
			}
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	return resp, nil
}

// weekBounds returns the Monday-start week containing t, [start, end).
func weekBounds(t time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	year, month, day := t.AddDate(0, 0, -daysSinceMonday).Date()
	weekStart := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return weekStart, weekStart.AddDate(0, 0, 7)
}

func isBookableWeekday(wd time.Weekday) bool {
	return wd != time.Saturday && wd != time.Sunday
}

func overlapsAny(start, end time.Time, busy []repository.BusyWindow) bool {
	for _, w := range busy {
		if start.Before(w.End) && end.After(w.Start) {
			return true
		}
	}
	return false
}
