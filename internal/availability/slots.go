package availability

import (
	"fmt"
	"time"

	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// Slot is one bookable 30-minute window, transient and recomputed whenever
// the selected veterinarian or date changes.
type Slot struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

const (
	slotMinutes     = 30
	leadTimeMinutes = 120
)

// weekdayKeys maps Go weekdays to the backend's schedule keys: lowercase
// Spanish day names with diacritics already stripped (miercoles, sabado).
var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miercoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sabado",
	time.Sunday:    "domingo",
}

// WeekdayKey resolves the schedule key for a calendar date.
func WeekdayKey(date time.Time) string {
	return weekdayKeys[date.Weekday()]
}

// Slots computes the bookable windows for one (vet, date) pair out of the
// weekly template and the already-booked times. All arithmetic happens on
// wall-clock "HH:MM" strings; no timezone conversion is applied, matching the
// backend's local-time convention.
func Slots(week domain.WeeklyAvailability, date time.Time, booked []string, clock Clock) []Slot {
	day, ok := week[WeekdayKey(date)]
	if !ok || !day.Active {
		return nil
	}

	start, err := parseHHMM(day.Start)
	if err != nil {
		return nil
	}
	end, err := parseHHMM(day.End)
	if err != nil {
		return nil
	}

	lunchStart, lunchEnd, hasLunch := -1, -1, false
	if ls, err := parseHHMM(day.LunchStart); err == nil {
		if le, err := parseHHMM(day.LunchEnd); err == nil {
			lunchStart, lunchEnd, hasLunch = ls, le, true
		}
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		bookedSet[t] = struct{}{}
	}

	now := clock.Now()
	isToday := sameDay(date, now)
	cutoff := now.Hour()*60 + now.Minute() + leadTimeMinutes

	var slots []Slot
	for t := start; t < end; t += slotMinutes {
		if hasLunch && t >= lunchStart && t < lunchEnd {
			continue
		}
		value := formatHHMM(t)
		if _, taken := bookedSet[value]; taken {
			continue
		}
		if isToday && t < cutoff {
			continue
		}
		slots = append(slots, Slot{
			Label: fmt.Sprintf("%s - %s", value, formatHHMM(t+slotMinutes)),
			Value: value,
		})
	}
	return slots
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func parseHHMM(value string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("parse %q: %w", value, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hours*60 + minutes, nil
}

// formatHHMM renders minutes-since-midnight with the carry applied, so a slot
// ending past a full hour prints correctly.
func formatHHMM(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
