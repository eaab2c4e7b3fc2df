package utils

import (
	"strings"
	"time"
)

// ParseDate aceita YYYY-MM-DD ou RFC3339. dateOnly indica o primeiro formato,
// usado para tornar limites superiores inclusivos no dia inteiro.
func ParseDate(dateStr string) (date *time.Time, dateOnly bool, err error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, false, nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC); err == nil {
		return &t, true, nil
	}

	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return nil, false, err
	}

	t = t.UTC()
	return &t, false, nil
}
