package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serials below this are treated as plain numbers, not dates.
const minDateSerial = 20000

// Days between the spreadsheet epoch (1899-12-30) and the Unix epoch.
const unixEpochSerial = 25569

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	dayFirstDate = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})(?:\s(\d{1,2}):(\d{1,2}))?`)
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseNumber reads a cell as a number. Both 1.234,5 and 1,234.5 are
// accepted: when both separators appear the last one is the decimal point.
// Trailing garbage is ignored; anything unreadable is 0.
func ParseNumber(cell any) float64 {
	switch v := cell.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(v) {
			return 0
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case time.Time:
		return 0
	}

	s := strings.TrimSpace(cellString(cell))
	if s == "" || s == "-" {
		return 0
	}
	hasComma, hasDot := strings.Contains(s, ","), strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	prefix := numberPrefix.FindString(s)
	if prefix == "" {
		return 0
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseDate reads a cell as a wall-clock time in loc. Numbers, and text that
// is a plain number, are spreadsheet serials; other text is tried as
// DD/MM/YYYY [HH:MM] and then as ISO.
func ParseDate(cell any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := cell.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.In(loc), true
	case float64:
		return fromSerial(v, loc)
	case int:
		return fromSerial(float64(v), loc)
	case int64:
		return fromSerial(float64(v), loc)
	}

	s := strings.TrimSpace(cellString(cell))
	if s == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(n, loc)
	}
	if m := dayFirstDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		var hour, minute int
		if m[4] != "" {
			hour, _ = strconv.Atoi(m[4])
			minute, _ = strconv.Atoi(m[5])
		}
		return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), true
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fromSerial converts a spreadsheet serial to the wall clock it displays.
func fromSerial(v float64, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < minDateSerial {
		return time.Time{}, false
	}
	ms := int64(math.Floor((v-unixEpochSerial)*86400*1000 + 0.5))
	u := time.UnixMilli(ms).UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), loc), true
}

// cellString renders a cell as text. Zero and nil render empty, like a blank cell.
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == 0 || math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		return ""
	}
}

// cellAt returns row[i], or nil when the column is missing.
func cellAt(row []any, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

func textAt(row []any, i int) string {
	return strings.TrimSpace(cellString(cellAt(row, i)))
}
