package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	return ParseIntMax(value, defaultValue, math.MaxInt)
}

// ParseIntMax is ParseInt that also falls back to the default above max.
func ParseIntMax(value string, defaultValue, max int) int {
	if value == "" {
		return defaultValue
	}

	result, err := cast.ToIntE(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	if result < 1 || result > max {
		return defaultValue
	}

	return result
}

// ParseInt64 is lenient: malformed, negative or above-max input yields the
// default.
func ParseInt64(value string, defaultValue, max int64) int64 {
	if value == "" {
		return defaultValue
	}

	result, err := cast.ToFloat64E(strings.TrimSpace(value))
	if err != nil || math.IsNaN(result) || result < 0 {
		return defaultValue
	}
	// float64(max) may round up past max, so compare in both domains
	if result >= math.MaxInt64 || result > float64(max) || int64(result) > max {
		return defaultValue
	}

	return int64(result)
}

// ParseBool accepts "true", "1", "t" and friends.
func ParseBool(value string) bool {
	return cast.ToBool(strings.TrimSpace(value))
}

func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateOrderID creates a unique booking reference with timestamp
func GenerateOrderID() string {
	now := time.Now()

	// Format: FLY-YYYYMMDD-HHMMSS-XXXXXXXXXXXX, the suffix cut from a random uuid
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])

	return fmt.Sprintf("FLY-%s-%s-%s", datePart, timePart, randomPart)
}
