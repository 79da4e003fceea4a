package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TimeOfDay is a wall-clock time within a single day, stored as minutes
// since midnight. It carries no date and no timezone; slot times are local
// to the event.
type TimeOfDay struct {
	minutes int
}

// ParseTimeOfDay parses a strict 24-hour "HH:MM" string (hour 00-23,
// minute 00-59, both exactly two digits). Any other shape returns
// ErrInvalidTimeFormat.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	if len(raw) != 5 || raw[2] != ':' {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	for _, i := range []int{0, 1, 3, 4} {
		if raw[i] < '0' || raw[i] > '9' {
			return TimeOfDay{}, ErrInvalidTimeFormat
		}
	}
	hour := int(raw[0]-'0')*10 + int(raw[1]-'0')
	minute := int(raw[3]-'0')*10 + int(raw[4]-'0')
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// Minutes returns the minutes elapsed since midnight.
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

// Equal reports whether two times fall on the same minute.
func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.minutes == other.minutes
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalJSON encodes the time as its "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" string, enforcing the same format rules
// as ParseTimeOfDay.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidTimeFormat
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the time as "HH:MM" text.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan reads the time back from its "HH:MM" text representation.
func (t *TimeOfDay) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return fmt.Errorf("invalid time of day %q in database", s)
	}
	*t = parsed
	return nil
}
