package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePeriod reads a window length in days. An empty value yields def.
func ParsePeriod(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: period must be an integer number of days", ErrInvalidRequest)
	}
	if days < 0 || days > max {
		return 0, fmt.Errorf("%w: period must be between 0 and %d", ErrInvalidRequest, max)
	}
	return days, nil
}
