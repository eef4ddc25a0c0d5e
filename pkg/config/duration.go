package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration returns an error unless d > 0.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange returns an error unless min <= d <= max.
//
// Example:
//
//	// shutdown timeout between 1s and 1m
//	if err := ValidateDurationRange(timeout, time.Second, time.Minute); err != nil {
//	    return fmt.Errorf("invalid shutdown timeout: %w", err)
//	}
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if d < min {
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}
