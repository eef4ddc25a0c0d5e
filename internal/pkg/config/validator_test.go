package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "daily at 05:30", schedule: "30 5 * * *"},
		{name: "every 15 minutes", schedule: "*/15 * * * *"},
		{name: "weekdays", schedule: "0 9 * * 1-5"},
		{name: "empty", schedule: "", wantErr: true},
		{name: "six fields", schedule: "0 30 5 * * *", wantErr: true},
		{name: "descriptor", schedule: "@daily", wantErr: true},
		{name: "minute out of range", schedule: "61 * * * *", wantErr: true},
		{name: "garbage", schedule: "not a schedule", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Asia/Tokyo"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus_Mons"))
}

func TestValidateIntRange(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateIntRange(1, 1, 10))
	assert.NoError(t, ValidateIntRange(10, 1, 10))
	assert.ErrorContains(t, ValidateIntRange(0, 1, 10), "below minimum")
	assert.ErrorContains(t, ValidateIntRange(11, 1, 10), "exceeds maximum")
	assert.ErrorContains(t, ValidateIntRange(5, 10, 1), "invalid range")
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePort(9091))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(70000))
}
