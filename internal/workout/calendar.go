package workout

import "time"

const previewLength = 100

// CalendarDay is a single day of the schedule built by Calendar.
type CalendarDay struct {
	Date time.Time
	// Day is the 1-based plan day or 0 on rest days.
	Day     int
	Rest    bool
	Preview string
}

// Calendar lays out weeks*7 days from start. The plan days fill the first days of the first week and every
// other day is a rest day.
func Calendar(plan Plan, start time.Time, weeks int) []CalendarDay {
	if weeks <= 0 {
		return nil
	}

	y, m, d := start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	days := make([]CalendarDay, 0, weeks*daysPerWeek)
	for week := range weeks {
		for weekday := range daysPerWeek {
			offset := week*daysPerWeek + weekday
			entry := CalendarDay{
				Date:    first.AddDate(0, 0, offset),
				Day:     0,
				Rest:    true,
				Preview: "",
			}
			if week == 0 && weekday < len(plan.Days) {
				entry.Day = plan.Days[weekday].Day
				entry.Rest = false
				entry.Preview = preview(plan.Days[weekday].Workout)
			}
			days = append(days, entry)
		}
	}
	return days
}

func preview(workout string) string {
	runes := []rune(workout)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}
