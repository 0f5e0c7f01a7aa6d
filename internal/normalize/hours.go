package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Explicit am/pm range: "9am-3pm", "9:30 a.m. to 2:30 p.m."
	ampmRangeRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\s*(?:-|–|to)\s*(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?`)

	// Bare numeric range: "8-2", "9:30-2:30".
	bareRangeRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(?:-|–)\s*(\d{1,2})(?::(\d{2}))?`)
)

// ParseHours converts a show-hours string to canonical start and end time
// strings ("9:00 AM", "3:00 PM"). Strings containing a comma or semicolon
// describe multiple ranges and are rejected as ambiguous. A bare numeric
// range infers meridiem: the first number is morning, the second afternoon.
// Unrecognized input yields empty strings.
func ParseHours(raw string) (start, end string) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "()")
	if s == "" {
		return "", ""
	}

	// Multi-range listings ("Sat 9-5, Sun 10-4") cannot be reduced to one
	// start/end pair.
	if strings.ContainsAny(s, ",;") {
		return "", ""
	}

	if m := ampmRangeRe.FindStringSubmatch(s); m != nil {
		start = formatTime(m[1], m[2], strings.ToUpper(m[3]))
		end = formatTime(m[4], m[5], strings.ToUpper(m[6]))
		return start, end
	}

	if m := bareRangeRe.FindStringSubmatch(s); m != nil {
		startHour, _ := strconv.Atoi(m[1])
		endHour, _ := strconv.Atoi(m[3])

		startMer := "A"
		if startHour == 12 {
			startMer = "P"
		}
		endMer := "P"
		// "8-11" reads as a morning show; keep both sides AM when the end
		// already follows the start within the morning.
		if startMer == "A" && endHour > startHour && endHour < 12 {
			endMer = "A"
		}

		start = formatTime(m[1], m[2], startMer)
		end = formatTime(m[3], m[4], endMer)
		return start, end
	}

	return "", ""
}

// IsHourRange reports whether s looks like a single start/end hour range,
// used to validate parenthetical hour tokens in deterministic parsing.
func IsHourRange(s string) bool {
	start, end := ParseHours(s)
	return start != "" && end != ""
}

func formatTime(hourStr, minuteStr, meridiem string) string {
	hour, _ := strconv.Atoi(hourStr)
	if hour < 1 || hour > 12 {
		return ""
	}
	minute := 0
	if minuteStr != "" {
		minute, _ = strconv.Atoi(minuteStr)
	}
	return fmt.Sprintf("%d:%02d %sM", hour, minute, meridiem)
}
