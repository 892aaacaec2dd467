package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsDerivations(t *testing.T) {
	settings := &Settings{
		OfficeStartTime: "09:30",
		OfficeEndTime:   "18:30",
		GraceMinutes:    15,
		OfficeNetwork:   "192.168.1.10",
	}

	t.Run("network policy", func(t *testing.T) {
		policy := settings.NetworkPolicy()
		assert.Equal(t, "192.168.1.10", policy.AllowedNetwork)
	})

	t.Run("attendance rules", func(t *testing.T) {
		rules := settings.AttendanceRules()
		assert.Equal(t, "09:30", rules.OfficeStartTime)
		assert.Equal(t, 15, rules.GraceMinutes)
	})

	t.Run("empty network means no restriction", func(t *testing.T) {
		open := &Settings{}
		assert.Empty(t, open.NetworkPolicy().AllowedNetwork)
	})
}
