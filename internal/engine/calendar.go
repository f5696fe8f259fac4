package engine

import "fmt"

// Calendar layout: four 13-week seasons per year.
const (
	WeeksPerSeason = 13
	WeeksPerYear   = 4 * WeeksPerSeason
)

// Season constants.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// SeasonName returns a human-readable season name.
func SeasonName(season uint8) string {
	switch season {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// seasonOf maps a week of the year (1-based) to its season.
func seasonOf(week int) uint8 {
	return uint8((week - 1) / WeeksPerSeason % 4)
}

// Season returns the current season.
func (s *Stronghold) Season() uint8 {
	return seasonOf(s.Week)
}

// advanceCalendar moves one week forward, rolling the year every 52 weeks.
func (s *Stronghold) advanceCalendar() {
	s.Week++
	if s.Week > WeeksPerYear {
		s.Week = 1
		s.Year++
	}
}

// Date returns a display string like "Spring, Week 4, Year 2".
func (s *Stronghold) Date() string {
	weekOfSeason := (s.Week-1)%WeeksPerSeason + 1
	return fmt.Sprintf("%s, Week %d, Year %d", SeasonName(s.Season()), weekOfSeason, s.Year)
}
