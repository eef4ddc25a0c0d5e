package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard 5-field format (minute hour dom month dow),
// matching what cron.New uses by default.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule reports whether schedule is a valid 5-field cron expression.
// Descriptors such as "@daily" are rejected.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone reports whether timezone names an IANA location.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return errors.New("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return nil
}

// ValidateIntRange checks min <= value <= max.
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}
	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}
	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}
	return nil
}

// ValidatePort checks that p is a usable TCP port.
func ValidatePort(p int) error {
	if err := ValidateIntRange(p, 1, 65535); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	return nil
}
