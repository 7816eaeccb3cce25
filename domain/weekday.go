package domain

import "strings"

// Weekday is a validated availability day. Only the seven canonical
// values below are ever stored.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

var weekdayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseWeekday maps a wire value onto its canonical day, accepting full
// names and common abbreviations case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	if day, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return day, nil
	}
	return "", NewError(ErrCodeInvalid, "unrecognized availability day: "+s)
}

// ParseWeekdays validates a whole availability list, rejecting the
// request on the first unknown value.
func ParseWeekdays(values []string) ([]Weekday, error) {
	days := make([]Weekday, 0, len(values))
	for _, v := range values {
		day, err := ParseWeekday(v)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
