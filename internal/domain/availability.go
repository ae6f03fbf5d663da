package domain

// DaySchedule is one weekday entry of a veterinarian's weekly template. All
// times are "HH:MM" wall-clock strings in the clinic's local convention.
type DaySchedule struct {
	Active     bool   `json:"active"`
	Start      string `json:"start"`
	End        string `json:"end"`
	LunchStart string `json:"lunchStart"`
	LunchEnd   string `json:"lunchEnd"`
}

// WeeklyAvailability maps lowercase, diacritics-free weekday names (lunes,
// martes, ...) to their schedule entry. A missing key means the vet does not
// work that day.
type WeeklyAvailability map[string]DaySchedule
