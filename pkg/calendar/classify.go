package calendar

import "strings"

// Category is the display bucket of an event, derived from its title on
// every render. Exams and holidays get their own colors; everything
// else falls through to the default.
type Category string

const (
	CategoryExam    Category = "exam"
	CategoryHoliday Category = "holiday"
	CategoryDefault Category = "default"
)

type Style struct {
	Color string
}

var styles = map[Category]Style{
	CategoryExam:    {Color: "#dc3545"},
	CategoryHoliday: {Color: "#28a745"},
	CategoryDefault: {Color: "#3788d8"},
}

func Classify(title string) Category {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "exam"):
		return CategoryExam
	case strings.Contains(t, "holiday"):
		return CategoryHoliday
	default:
		return CategoryDefault
	}
}

func (c Category) Style() Style {
	return styles[c]
}
