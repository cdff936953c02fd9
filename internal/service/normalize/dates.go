package normalize

import "time"

// WireTimeLayout is the date-time format the backends expect on writes and
// sometimes emit on reads ("dd/MM/yyyy HH:mm"). FormatWireTime and the
// string branch of ParseTime must round-trip exactly through this layout.
const WireTimeLayout = "02/01/2006 15:04"

var readLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	WireTimeLayout,
	"2006-01-02",
}

// ParseTime detects the representation of a wire date value and parses it.
// The backends have emitted ISO strings, "dd/MM/yyyy HH:mm" strings, epoch
// milliseconds and nulls for the same fields at different times. The second
// return value reports whether a usable time was found; callers choose the
// fallback, never this function.
func ParseTime(v any) (time.Time, bool) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return value, true
	case string:
		if value == "" {
			return time.Time{}, false
		}
		for _, layout := range readLayouts {
			if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		// Epoch milliseconds; JSON numbers decode as float64.
		return time.UnixMilli(int64(value)), true
	case int64:
		return time.UnixMilli(value), true
	default:
		return time.Time{}, false
	}
}

// FormatWireTime serializes a time for submission to the backends.
func FormatWireTime(t time.Time) string {
	return t.Format(WireTimeLayout)
}

func timeOrNow(v any) time.Time {
	if t, ok := ParseTime(v); ok {
		return t
	}
	return time.Now()
}

func timePtr(v any) *time.Time {
	if t, ok := ParseTime(v); ok {
		return &t
	}
	return nil
}
